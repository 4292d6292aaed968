// @title           ESG Policy Pipeline API
// @version         1.0
// @description     This API crawls company sites and generates ESG policies asynchronously
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/data/redisStore"
	"github.com/akolanti/EsgAPI/internal/data/store"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/handlers"
	"github.com/akolanti/EsgAPI/internal/job"
	"github.com/akolanti/EsgAPI/internal/middleware"
	"github.com/akolanti/EsgAPI/internal/pipeline"
	"github.com/akolanti/EsgAPI/internal/pipeline/crawler"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding/googleEmbedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding/openaiEmbedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm/gemini"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm/openaiLLM"
	"github.com/akolanti/EsgAPI/internal/pipeline/vectorDB/qdrantDB"
	"github.com/akolanti/EsgAPI/internal/server"
	"github.com/akolanti/EsgAPI/internal/worker"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	_ = godotenv.Load()

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	settings := config.Load()
	flag.StringVar(&listenAddr, "listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	redisStore.Configure(settings.RedisAddr, settings.RedisPassword)
	middleware.Configure(settings)

	//init buffered job channel
	jobChannel := make(chan jobModel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	if jobStore := store.GetRedisJobStore(serviceContext); jobStore != nil {
		serviceConfig.JobStore = jobStore
	}
	if sessionStore := store.GetRedisSessionStore(serviceContext); sessionStore != nil {
		serviceConfig.SessionStore = sessionStore
	}
	if serviceConfig.JobStore == nil || serviceConfig.SessionStore == nil {
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.SessionStore = store.InitSessionStore()
	}
	service := job.InitJobService(serviceConfig)

	vectorDatabase := qdrantDB.GetQdrantClient(serviceContext, settings)

	var embeddingService embedding.Embedder
	var llmProvider llm.Provider
	if settings.Provider == "gemini" {
		embeddingService = googleEmbedding.GetGoogleEmbeddingClient(serviceContext, settings)
		llmProvider = gemini.GetGeminiClient(serviceContext, settings)
	} else {
		embeddingService = openaiEmbedding.GetOpenAIEmbeddingClient(serviceContext, settings)
		llmProvider = openaiLLM.GetOpenAIClient(serviceContext, settings)
	}

	if vectorDatabase == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDatabase != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	pipelineService := pipeline.NewService(crawler.NewFetcher(), vectorDatabase, llmProvider, embeddingService, serviceConfig.SessionStore)

	handlers.InitJobHandler(service, vectorDatabase)

	//init worker pool
	worker.InitServices(service, pipelineService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
