package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8787"

	// LLM Provider Configuration
	LLMProvider string `mapstructure:"LLM_PROVIDER"` // "ollama" (default, local) or "groq"
	GroqAPIKey  string `mapstructure:"GROQ_API_KEY"` // API key for Groq; empty means fall back to Ollama
	GroqModel   string `mapstructure:"GROQ_MODEL"`   // e.g., "llama-3.1-70b-versatile"
	OllamaHost  string `mapstructure:"OLLAMA_HOST"`  // e.g., "http://localhost:11434"
	OllamaModel string `mapstructure:"OLLAMA_MODEL"` // e.g., "qwen2.5-coder:7b"
	FastMode    bool   `mapstructure:"FAST_MODE"`    // shorter output budget for quicker generations

	// Prompt Expansion Configuration
	PromptEnhance bool `mapstructure:"PROMPT_ENHANCE"` // expand short prompts into a detailed site spec

	// Image Generation Configuration
	ImageGatewayURL string `mapstructure:"IMAGE_GATEWAY_URL"` // OpenAI-compatible multimodal endpoint
	ImageAPIKey     string `mapstructure:"IMAGE_API_KEY"`     // empty disables image generation
	ImageModel      string `mapstructure:"IMAGE_MODEL"`       // e.g., "google/gemini-2.5-flash-image-preview"

	// Generation Limits
	GenerateTimeoutSeconds int `mapstructure:"GENERATE_TIMEOUT_SECONDS"` // hard wall-clock budget per request
	DailyFreeCredits       int `mapstructure:"DAILY_FREE_CREDITS"`       // free-plan credit allowance per day
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)     // Path to look for the config file in
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // Read environment variables that match keys

	// Defaults keep the server usable with nothing but a local Ollama running.
	viper.SetDefault("SERVER_ADDRESS", ":8787")
	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("GROQ_MODEL", "llama-3.1-70b-versatile")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "qwen2.5-coder:7b")
	viper.SetDefault("FAST_MODE", true)
	viper.SetDefault("PROMPT_ENHANCE", true)
	viper.SetDefault("IMAGE_MODEL", "google/gemini-2.5-flash-image-preview")
	viper.SetDefault("GENERATE_TIMEOUT_SECONDS", 180)
	viper.SetDefault("DAILY_FREE_CREDITS", 10)

	// Attempt to read the config file
	err = viper.ReadInConfig()
	if err != nil {
		// If config file not found, log it but continue if env vars might be set
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			// If another error occurred reading the config file, return it
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	// Unmarshal the configuration into the Config struct
	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.LLMProvider = strings.ToLower(strings.TrimSpace(config.LLMProvider))
	config.OllamaHost = strings.TrimSuffix(config.OllamaHost, "/")

	if config.LLMProvider == "groq" && config.GroqAPIKey == "" {
		log.Println("WARN: LLM_PROVIDER is 'groq' but GROQ_API_KEY is not set; calls will fall back to Ollama.")
	}
	if config.ImageAPIKey == "" {
		log.Println("Info: IMAGE_API_KEY is not set, image generation is disabled.")
	}

	return
}
