// Command generate_demo creates a local database with sample records for
// working offline with STORE_BACKEND=sqlite.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/database"
	"github.com/crazythursday/copywriting/internal/database/runs"
	"github.com/crazythursday/copywriting/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type sample struct {
	content string
	status  entities.CopywritingStatus
}

var samples = []sample{
	{"今天是疯狂星期四，谁请我吃，我和谁好。", entities.StatusApproved},
	{"我是秦始皇，其实我没有死。今天疯狂星期四，v我50，等我复国封你为大将军。", entities.StatusApproved},
	{"朋友们，人生就像一只鸡翅，有时候香脆，有时候……也还是香脆。今天星期四，懂的都懂。", entities.StatusApproved},
	{"据可靠消息，本周四全国鸡块库存告急，请速速v我50囤货。", entities.StatusApproved},
	{"我的钱包昨天去旅行了，说要星期五才回来，今天谁能借我50？", entities.StatusPending},
	{"别问我为什么突然找你聊天，问就是今天星期四。", entities.StatusPending},
	{"上班如上坟，除了星期四。", entities.StatusPending},
	{"请v我50，我要买一本教人要钱的书。", entities.StatusRejected},
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	started := time.Now()

	inputs := make([]entities.CopywritingInput, len(samples))
	for i, s := range samples {
		// Everything enters the queue as pending, then goes through moderation.
		inputs[i] = entities.CopywritingInput{Content: s.content, Status: entities.StatusPending}
	}
	rows, err := db.Insert(ctx, config.DefaultTable, inputs)
	if err != nil {
		log.Fatalf("Failed to insert samples: %v", err)
	}

	for i, row := range rows {
		if samples[i].status == entities.StatusPending {
			continue
		}
		if _, err := db.UpdateStatus(ctx, config.DefaultTable, row.ID, samples[i].status); err != nil {
			log.Printf("Failed to moderate record %d: %v", row.ID, err)
		}
	}

	run := &entities.ImportRun{
		ID:        uuid.New().String(),
		Source:    "demo",
		Origin:    "generate_demo",
		Total:     len(samples),
		Succeeded: len(rows),
		Batches:   1,
		StartedAt: started,
	}
	repo := runs.NewRepository(db.DB)
	if err := repo.Start(run); err != nil {
		log.Fatalf("Failed to record demo run: %v", err)
	}
	run.Status = entities.ImportRunCompleted
	if err := repo.Finish(run); err != nil {
		log.Printf("Failed to finish demo run: %v", err)
	}

	log.Printf("Demo database ready: %d records (%s)", len(rows), *dbPath)
	log.Printf("Serve it with: STORE_BACKEND=sqlite DATABASE_PATH=%s go run .", *dbPath)
}
