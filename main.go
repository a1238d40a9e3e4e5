package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-mdp/api"
	api_i "github.com/beka-birhanu/vinom-mdp/api/i"
	"github.com/beka-birhanu/vinom-mdp/api/identity"
	"github.com/beka-birhanu/vinom-mdp/api/session"
	"github.com/beka-birhanu/vinom-mdp/config"
	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/game/mdp"
	"github.com/beka-birhanu/vinom-mdp/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mdp/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-mdp/infrastruture/token"
	"github.com/beka-birhanu/vinom-mdp/service"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const janitorInterval = time.Minute

// Global variables for dependencies
var (
	envs               config.Config
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	operatorRepo       *repo.OperatorRepo
	roundRepo          *repo.RoundRepo
	agent              *game.Agent
	sessionManager     *service.SessionManager
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	sessionsController api_i.Controller
	router             *api.Router
	appLogger          *log.Logger
)

func fatalf(format string, args ...any) {
	appLogger.Printf("%s[ERROR]%s "+format, append([]any{config.LogErrorColor, config.LogColorReset}, args...)...)
	os.Exit(1)
}

func infof(format string, args ...any) {
	appLogger.Printf("%s[INFO]%s "+format, append([]any{config.LogInfoColor, config.LogColorReset}, args...)...)
}

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset), log.LstdFlags)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", envs.DBUser, envs.DBPassword, envs.DBHost, envs.DBPort)

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatalf("MongoDB ping failed: %v", err)
	}
	infof("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	operatorRepo = repo.NewOperatorRepo(mongoClient, envs.DBName, "operators")
	if err := operatorRepo.EnsureIndexes(ctx); err != nil {
		fatalf("Creating operator indexes: %v", err)
	}
	roundRepo = repo.NewRoundRepo(mongoClient, envs.DBName, "rounds")
	if err := roundRepo.EnsureIndexes(ctx); err != nil {
		fatalf("Creating round indexes: %v", err)
	}
	infof("Repositories initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", envs.RedisHost, envs.RedisPort),
		Password: envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatalf("Redis ping failed: %v", err)
	}
	infof("Connected to Redis")
}

func initAgent() {
	mode, err := mdp.ParseMode(envs.Solver.Mode)
	if err != nil {
		fatalf("Parsing solver mode: %v", err)
	}

	cfg := game.DefaultConfig()
	cfg.Mode = mode
	cfg.Verbose = envs.Solver.Verbose
	cfg.Discount = envs.Solver.Discount
	cfg.Tolerance = envs.Solver.Tolerance
	cfg.SafetyDistance = envs.Solver.SafetyDistance
	cfg.DecayRate = envs.Solver.DecayRate
	cfg.DefaultBudget = envs.Solver.DefaultBudget
	cfg.SparseBudget = envs.Solver.SparseBudget
	cfg.SparseThreshold = envs.Solver.SparseThreshold
	cfg.Logger = newLogger("AGENT", config.ColorMagenta)

	agent, err = game.NewAgent(cfg)
	if err != nil {
		fatalf("Creating agent: %v", err)
	}
	infof("Agent initialized in %s mode", mode)
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewSessionManager(service.SessionManagerConfig{
		Agent:      agent,
		Rounds:     roundRepo,
		ScoreBoard: sortedstorage.NewRedisScoreBoard(redisClient, envs.LeaderboardKey),
		Locker:     sortedstorage.NewRedisLocker(redisClient),
		SessionTTL: time.Duration(envs.SessionTTLSeconds) * time.Second,
		Logger:     newLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		fatalf("Creating session manager: %v", err)
	}
	infof("Session manager initialized")
}

func initAuth() {
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)

	var err error
	authService, err = service.NewAuthService(operatorRepo, jwtTokenizer)
	if err != nil {
		fatalf("Creating auth service: %v", err)
	}
	infof("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)
	sessionsController = session.NewController(sessionManager)
	infof("Controllers initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, sessionsController},
		AuthorizationMiddleware: identity.Authoriz(jwtTokenizer),
	})
	infof("Router initialized")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)
	envs = config.Load()
	gin.SetMode(envs.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	initMongo(setupCtx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRepos(setupCtx)

	initRedis(setupCtx)
	defer redisClient.Close()

	initAgent()
	initSessionManager()
	go sessionManager.RunJanitor(ctx, janitorInterval)

	initAuth()
	initControllers()
	initRouter()

	if err := router.Run(ctx); err != nil {
		fatalf("Serving HTTP: %v", err)
	}
	infof("Server stopped")
}
