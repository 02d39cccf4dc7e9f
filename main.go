package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"portfolio-backend/api"
	"portfolio-backend/config"
	"portfolio-backend/database"
	"portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	environment := config.GetString(c, "ENVIRONMENT", "development")

	mongoURI := config.GetString(c, "MONGODB_URI", "")
	if mongoURI == "" {
		fmt.Println("MONGODB_URI is required. Exiting...")
		os.Exit(1)
	}

	var currentDB database.Database
	client, err := database.Connect(context.Background(), mongoURI, 10*time.Second)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		// Managed production deployments keep serving and answer 503
		// instead of exiting
		if environment != "production" {
			os.Exit(1)
		}
		currentDB = database.Unavailable()
	} else {
		currentDB = database.New(client, config.GetString(c, "MONGODB_DATABASE", "portfolio"))
		defer client.Disconnect(context.Background())
		fmt.Println("Database connected successfully")
	}

	mediaStore, err := services.NewMediaStore(services.MediaStoreConfig{
		Endpoint:  config.GetString(c, "MEDIA_ENDPOINT", ""),
		AccessKey: config.GetString(c, "MEDIA_ACCESS_KEY", ""),
		SecretKey: config.GetString(c, "MEDIA_SECRET_KEY", ""),
		Bucket:    config.GetString(c, "MEDIA_BUCKET", "portfolio-media"),
		UseSSL:    config.GetBool(c, "MEDIA_USE_SSL", false),
	})
	if err != nil {
		fmt.Printf("Error initializing media store: %v\n", err)
		os.Exit(1)
	}

	mailer := services.NewMailer(services.MailerConfig{
		Host:     config.GetString(c, "SMTP_HOST", "smtp.gmail.com"),
		Port:     config.GetString(c, "SMTP_PORT", "587"),
		User:     config.GetString(c, "EMAIL_USER", ""),
		Password: config.GetString(c, "EMAIL_PASS", ""),
		Receiver: config.GetString(c, "RECEIVER_EMAIL", ""),
	})

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, mediaStore, mailer)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
