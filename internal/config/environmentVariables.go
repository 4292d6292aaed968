package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = false //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5
	RATE_LIMITER_MAX_TRACKED_IPS    = 1000

	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingDBName                     = "company_profile_docs"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobExecutionTimeout             = 10 * time.Minute //crawls and per-chunk annotation dominate

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second

	//crawler
	CrawlUserAgent      = "esg-pipeline-bot/1.0"
	CrawlParallelism    = 3
	CrawlPoliteDelay    = 500 * time.Millisecond
	CrawlRequestTimeout = 30 * time.Second
	CrawlMaxPages       = 50
	CrawlMaxRetries     = 2

	//chunking
	MaxChunkSize     = 5000
	MinChunkFraction = 0.3 //earliest point in a chunk where a break is taken
	IngestBatchSize  = 100

	//retrieval
	ProfileRetrievalK = 5
	PolicyRetrievalK  = 5
	ProfileQuery      = "about us mission vision values objectives company profile"
	PolicyQuery       = "sustainability environmental social governance responsibility"

	//llm
	OpenAIModelName      = "gpt-4-0125-preview"
	OpenAIEmbeddingModel = "text-embedding-3-small"
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	ModelTemperature float32 = 0.7

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisSessionStore = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisSessionStoreTTL = 24 * time.Hour
)
