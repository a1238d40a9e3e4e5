package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string // Host IP for the server
	RESTPort      int    // Port for the REST API
	DBHost        string // Hostname or IP address for the database
	DBPort        int    // Port number for the database
	DBUser        string // Username for the database
	DBPassword    string // Password for the database
	DBName        string // Name of the database
	RedisHost     string // Hostname or IP address for redis
	RedisPort     int    // Port number for redis
	RedisPassword string // Password for redis, empty when none
	GinMode       string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret     string // Secret key for JWT signing
	JWTIssuer     string // Issuer claim for JWTs

	SessionTTLSeconds int    // Idle lifetime of a solver session
	LeaderboardKey    string // Redis key of the round score leaderboard

	Solver Solver
}

// Solver holds the tuning of the decision agent.
type Solver struct {
	Mode            string  // inactive, defensive or offensive
	Verbose         bool    // Log per-step diagnostics
	Discount        float64 // Discount factor
	Tolerance       float64 // Convergence tolerance
	SafetyDistance  int     // Hazard penalty rings
	DecayRate       float64 // Penalty recovered per ring
	DefaultBudget   int     // Bellman passes for dense target sets
	SparseBudget    int     // Bellman passes for sparse target sets
	SparseThreshold int     // Collectible count below which the sparse budget applies
}

// Load reads the application configuration from the environment.
// It loads environment variables from a .env file first, when one exists.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("%s[INFO]%s .env file not found or could not be loaded: %v", LogInfoColor, LogColorReset, err)
	}

	return Config{
		DBHost:            mustGetEnv("DB_HOST"),
		DBPort:            mustGetEnvAsInt("DB_PORT"),
		DBUser:            mustGetEnv("DB_USER"),
		DBPassword:        mustGetEnv("DB_PASS"),
		DBName:            mustGetEnv("DB_NAME"),
		RedisHost:         mustGetEnv("REDIS_HOST"),
		RedisPort:         mustGetEnvAsInt("REDIS_PORT"),
		RedisPassword:     getEnvWithDefault("REDIS_PASS", ""),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:         mustGetEnv("JWT_SECRET"),
		JWTIssuer:         mustGetEnv("JWT_ISSUER"),
		HostIP:            mustGetEnv("HOST_IP"),
		RESTPort:          mustGetEnvAsInt("REST_PORT"),
		SessionTTLSeconds: getEnvAsIntWithDefault("SESSION_TTL_SECONDS", 1800),
		LeaderboardKey:    getEnvWithDefault("LEADERBOARD_KEY", "vinom-mdp:leaderboard"),
		Solver:            LoadSolver(),
	}
}

// LoadSolver reads the agent tuning. Every setting is optional.
func LoadSolver() Solver {
	return Solver{
		Mode:            getEnvWithDefault("SOLVER_MODE", "inactive"),
		Verbose:         getEnvAsBoolWithDefault("SOLVER_VERBOSE", false),
		Discount:        getEnvAsFloatWithDefault("SOLVER_DISCOUNT", 0.6),
		Tolerance:       getEnvAsFloatWithDefault("SOLVER_TOLERANCE", 0.0001),
		SafetyDistance:  getEnvAsIntWithDefault("SOLVER_SAFETY_DISTANCE", 4),
		DecayRate:       getEnvAsFloatWithDefault("SOLVER_DECAY_RATE", 50),
		DefaultBudget:   getEnvAsIntWithDefault("SOLVER_DEFAULT_BUDGET", 100),
		SparseBudget:    getEnvAsIntWithDefault("SOLVER_SPARSE_BUDGET", 200),
		SparseThreshold: getEnvAsIntWithDefault("SOLVER_SPARSE_THRESHOLD", 10),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("%s[FATAL]%s Environment variable %s is not set", LogErrorColor, LogColorReset, key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("%s[FATAL]%s Environment variable %s must be an integer: %v", LogErrorColor, LogColorReset, key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("%s[WARN]%s %s=%q is not an integer, using %d", LogWarnColor, LogColorReset, key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("%s[WARN]%s %s=%q is not a number, using %v", LogWarnColor, LogColorReset, key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("%s[WARN]%s %s=%q is not a boolean, using %t", LogWarnColor, LogColorReset, key, value, defaultValue)
		return defaultValue
	}
	return b
}
