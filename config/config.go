package config

import (
    "log"
    "os"

    "github.com/joho/godotenv"
)

type Config struct {
    Stripe   StripeConfig
    Server   ServerConfig
    Checkout CheckoutConfig
    Redis    RedisConfig
    Static   StaticConfig
}

type StripeConfig struct {
    SecretKey string
}

type ServerConfig struct {
    Port string
}

type CheckoutConfig struct {
    FallbackReturnBase string
    SiteName           string
    ProductName        string
}

type RedisConfig struct {
    URL string
}

type StaticConfig struct {
    Dir string
}

func Load() *Config {
    if err := godotenv.Load(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    cfg := &Config{
        Stripe: StripeConfig{
            SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
        },
        Server: ServerConfig{
            Port: os.Getenv("PORT"),
        },
        Checkout: CheckoutConfig{
            FallbackReturnBase: os.Getenv("PUBLIC_BASE_URL"),
            SiteName:           os.Getenv("SITE_NAME"),
            ProductName:        os.Getenv("PRODUCT_NAME"),
        },
        Redis: RedisConfig{
            URL: os.Getenv("REDIS_URL"),
        },
        Static: StaticConfig{
            Dir: os.Getenv("STATIC_DIR"),
        },
    }

    if cfg.Server.Port == "" {
        cfg.Server.Port = "3000"
    }

    if cfg.Checkout.FallbackReturnBase == "" {
        cfg.Checkout.FallbackReturnBase = "http://localhost:" + cfg.Server.Port
        log.Printf("Warning: PUBLIC_BASE_URL not set, using default: %s", cfg.Checkout.FallbackReturnBase)
    }

    if cfg.Checkout.SiteName == "" {
        cfg.Checkout.SiteName = "doar"
    }

    if cfg.Checkout.ProductName == "" {
        cfg.Checkout.ProductName = "Doação"
    }

    if cfg.Static.Dir == "" {
        cfg.Static.Dir = "public"
    }

    return cfg
}
