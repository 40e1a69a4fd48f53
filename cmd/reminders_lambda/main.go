package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pgil256/juntas-seguras-sub006/pkg/config"
	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/notify"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
	dydbstore "github.com/pgil256/juntas-seguras-sub006/pkg/storage/dynamodb"
)

var store storage.Storage
var notifier notify.Notifier

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.PoolsTable, cfg.ConnectionsTable)

	if cfg.NotificationsQueueURL == "" {
		log.Fatal("SQS_NOTIFICATIONS_QUEUE_URL environment variable not set")
	}
	notifier = notify.NewSQSNotifier(sqs.NewFromConfig(awsCfg), cfg.NotificationsQueueURL)
}

// gracePeriod returns how long after a round starts payments may stay
// pending before the sweep flags them late.
func gracePeriod(frequency models.Frequency) time.Duration {
	switch frequency {
	case models.Weekly:
		return 3 * 24 * time.Hour
	case models.Biweekly:
		return 5 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps active
// pools for round payments still pending past the grace period, flags them
// late and enqueues a reminder for each affected member.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting late payment sweep...")

	pools, err := store.ListPools(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list pools: %v", err)
		return err
	}

	now := time.Now()
	flagged := 0

	for i := range pools {
		pool := &pools[i]
		if pool.Status != models.PoolActive {
			continue
		}
		if now.Sub(pool.RoundStartedAt) < gracePeriod(pool.Frequency) {
			continue
		}

		updated := pool.Clone()
		var lateMembers []string
		for j := range updated.CurrentRoundPayments {
			payment := &updated.CurrentRoundPayments[j]
			if payment.Status != models.PaymentPending && payment.Status != models.PaymentMemberConfirmed {
				continue
			}
			payment.Status = models.PaymentLate
			lateMembers = append(lateMembers, payment.MemberId)
		}
		if len(lateMembers) == 0 {
			continue
		}

		if err := store.SavePool(ctx, updated, pool.Version); err != nil {
			if errors.Is(err, storage.ErrVersionConflict) {
				// Someone changed the pool mid-sweep; the next run will
				// re-evaluate it against the fresh state.
				log.Printf("pool %s changed concurrently, skipping", pool.Id)
				continue
			}
			log.Printf("ERROR: failed to save pool %s: %v", pool.Id, err)
			return err
		}

		for _, memberId := range lateMembers {
			event := &notify.Event{
				Id:         uuid.New().String(),
				Type:       notify.EventPaymentReminder,
				PoolId:     updated.Id,
				PoolName:   updated.Name,
				MemberName: memberDisplayName(updated, memberId),
				Amount:     updated.ContributionAmount,
				Round:      updated.CurrentRound,
				OccurredAt: now,
			}
			if err := notifier.Publish(ctx, event); err != nil {
				log.Printf("ERROR: failed to enqueue reminder for member %s in pool %s: %v", memberId, updated.Id, err)
				// Continue to the next member, don't let one failure stop the whole batch.
				continue
			}
		}

		flagged += len(lateMembers)
	}

	log.Printf("Late payment sweep finished, %d payments flagged.", flagged)
	return nil
}

func memberDisplayName(pool *models.Pool, memberId string) string {
	if member := pool.MemberById(memberId); member != nil {
		return member.Name
	}
	return memberId
}

func main() {
	lambda.Start(HandleRequest)
}
