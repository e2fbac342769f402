package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StorageConfig содержит настройки файлового хранилища
type StorageConfig struct {
	DataDir      string
	ProductsFile string
	UsersFile    string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env файл не найден, используются переменные окружения")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Second * 15,
			WriteTimeout: time.Second * 15,
		},
		Storage: StorageConfig{
			DataDir:      getEnv("DATA_DIR", "DATABASE"),
			ProductsFile: getEnv("PRODUCTS_FILE", "products.csv"),
			UsersFile:    getEnv("USERS_FILE", "customers.xlsx"),
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
