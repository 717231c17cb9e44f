package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/streadway/amqp"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	db "github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/database"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/llm"
	objectclient "github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/object-client"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/parse_engine"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/services"
)

// parseJob is the message format published to the parse queue.
type parseJob struct {
	ResumeID string `json:"resume_id"`
}

func worker(id int, cfg *config.Config, parser *services.ParseService, wg *sync.WaitGroup) {
	defer wg.Done()

	conn, err := amqp.Dial(cfg.AmqpURL)
	if err != nil {
		log.Fatal("error dialling rabbitmq: " + err.Error())
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("error connecting to rabbitmq channel: " + err.Error())
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		cfg.ParseQueue, // queue name
		true,           // durable (survives broker restarts)
		false,          // auto-delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		cfg.ParseQueue, // queue name
		"",             // consumer tag
		true,           // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq message: " + err.Error())
	}

	for msg := range msgs {
		var job parseJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			log.Printf("error unmarshalling message body. err: %v", err)
			continue
		}
		if job.ResumeID == "" {
			log.Printf("message missing resume_id, skipping")
			continue
		}

		log.Printf("Worker %d processing resume. resume_id: %s", id+1, job.ResumeID)

		if err := parser.ProcessOne(context.Background(), job.ResumeID); err != nil {
			log.Printf("error parsing resume_id: %v. err: %v", job.ResumeID, err)
			continue
		}
		log.Printf("resume_id %s parsed", job.ResumeID)
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	dbClient, err := db.NewDatabaseClient(ctx, cfg)
	if err != nil {
		log.Fatal("error opening db. err: ", err)
	}
	defer dbClient.Close()

	objClient, err := objectclient.NewS3Client(ctx, cfg)
	if err != nil {
		log.Fatal("error creating object client. err: ", err)
	}

	fallback, err := llm.NewGeminiFallbackExtractor(ctx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		log.Fatal("error creating fallback extractor. err: ", err)
	}

	pipeline := parse_engine.New(parse_engine.Config{
		MinChars: cfg.MinResumeLen,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	parser := services.NewParseService(dbClient, objClient, pipeline, fallback, cfg)

	var wg sync.WaitGroup
	wg.Add(cfg.ParseWorkers)
	for i := range cfg.ParseWorkers {
		log.Println("worker id ", i+1, "started")
		go worker(i, cfg, parser, &wg)
	}
	wg.Wait()
}
