package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imobflow/crm-api/internal/infra/database"
	"github.com/imobflow/crm-api/internal/infra/http/handlers"
	"github.com/imobflow/crm-api/internal/infra/http/middleware"
	"github.com/imobflow/crm-api/internal/infra/integration/whatsapp"
	"github.com/imobflow/crm-api/internal/infra/mail"
	"github.com/imobflow/crm-api/internal/infra/queue"
	"github.com/imobflow/crm-api/internal/infra/worker"
	"github.com/imobflow/crm-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("❌ Falha ao conectar no banco: ", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		log.Fatal("❌ Falha ao conectar no RabbitMQ: ", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	brokerRepo := database.NewBrokerRepository(db)
	recordRepo := database.NewAssignmentRecordRepository(db)
	propertyRepo := database.NewPropertyRepository(db)

	// 2. Adapters de notificação
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	whatsClient := whatsapp.NewClient()

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Workers
	notifyWorker := queue.NewWorker(rabbitMQ.Ch, whatsClient, mailSender)
	go notifyWorker.Start(queue.QueueName)

	staleWorker := worker.NewStaleLeadWorker(db)
	go staleWorker.Start(context.Background())

	// 4. UseCases
	directory := usecase.NewLeadDirectory(leadRepo, brokerRepo)
	if err := directory.Refresh(context.Background()); err != nil {
		log.Printf("⚠️ Falha ao carregar diretório inicial: %v", err)
	}

	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, brokerRepo, recordRepo, producer)
	bulkAssignUC := usecase.NewBulkAssignUseCase(leadRepo, brokerRepo, recordRepo, producer, directory)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, leadRepo)
	intakeHandler := handlers.NewIntakeHandler(createLeadUC)
	assignmentHandler := handlers.NewAssignmentHandler(bulkAssignUC, directory)
	brokerHandler := handlers.NewBrokerHandler(brokerRepo)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-Id"},
	}))

	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/leads", leadHandler.HandleList)
	r.Get("/leads/candidates", assignmentHandler.HandleCandidates)
	r.Post("/assignments/bulk", assignmentHandler.HandleBulkAssign)
	r.Post("/webhook/leads", intakeHandler.HandleIntake)
	r.Get("/brokers", brokerHandler.HandleList)
	r.Get("/brokers/sources", brokerHandler.HandleListSources)
	r.Get("/properties", propertyHandler.HandleList)
	r.Post("/properties", propertyHandler.HandleCreate)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 ImobFlow CRM rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
