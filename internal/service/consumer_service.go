package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/dto"
	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/repository/specification"
	"pinpoint-be/internal/repository/unitofwork"
	"pinpoint-be/pkg/aiclient"
	"pinpoint-be/pkg/aistream"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	aiClient      *aiclient.Client
	resultService IResultService
	aiTimeout     time.Duration
	streamLogger  *log.Logger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	aiClient *aiclient.Client,
	resultService IResultService,
	aiTimeout time.Duration,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		uowFactory:    uowFactory,
		aiClient:      aiClient,
		resultService: resultService,
		aiTimeout:     aiTimeout,
		streamLogger:  initStreamLogger(),
	}
}

func initStreamLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "ai_stream.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[AI-STREAM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage runs one planning job. Jobs are fire and forget: every
// outcome Acks, a failed run is simply superseded by the job the next
// message schedules.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishAiJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		return
	}

	log.Printf("[INFO] Processing plan for SessionId: %s", payload.SessionId)

	if err := cs.runPlanJob(ctx, payload.SessionId); err != nil {
		log.Printf("[ERROR] Plan job failed for session %s: %v", payload.SessionId, err)
		return
	}

	log.Printf("[SUCCESS] Plan stored for SessionId: %s", payload.SessionId)
}

func (cs *consumerService) runPlanJob(ctx context.Context, sessionID uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// Re-read the full transcript at job time. Messages appended between
	// publish and processing are included, which only makes the plan fresher.
	transcript, err := uow.MessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return err
	}
	if len(transcript) == 0 {
		return nil
	}

	aiMessages := make([]aiclient.Message, 0, len(transcript))
	for _, m := range transcript {
		aiMessages = append(aiMessages, aiclient.Message{
			Role:    "user",
			Content: fmt.Sprintf("[%s] %s", m.Author, m.Content),
		})
	}

	jobCtx, cancel := context.WithTimeout(ctx, cs.aiTimeout)
	defer cancel()

	body, err := cs.aiClient.Stream(jobCtx, aiMessages)
	if err != nil {
		return err
	}
	defer body.Close()

	return cs.mergeStream(jobCtx, sessionID, body)
}

// mergeStream drains the event stream and upserts each event into the
// session's single result record as it arrives, so partial results are
// visible before the stream completes. After the stream ends a consistency
// pass writes the accumulated union of all fields. A stream that produced
// no events at all, or one cut off by a connection failure, is an upstream
// failure either way; fields that already landed stay persisted.
func (cs *consumerService) mergeStream(ctx context.Context, sessionID uuid.UUID, body io.Reader) error {
	parser := aistream.NewLineParser(cs.streamLogger)
	acc := aistream.NewAccumulator()
	wroteAny := false

	upsert := func(ev *aistream.Event) {
		if ev == nil || !ev.HasUpdate() {
			return
		}
		acc.Apply(ev)
		patch := cs.eventToPatch(sessionID, ev)
		if patch.IsEmpty() {
			return
		}
		if err := cs.resultService.Upsert(ctx, sessionID, patch); err != nil {
			cs.streamLogger.Printf("[WARN] upsert failed for session %s: %v", sessionID, err)
			return
		}
		wroteAny = true
	}

	buf := make([]byte, 4096)
	var readErr error
	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, ev := range parser.Feed(buf[:n]) {
				upsert(ev)
			}
		}
		if err != nil {
			if err != io.EOF {
				readErr = err
			}
			break
		}
	}

	// A chunked body often ends without a trailing newline.
	upsert(parser.Flush())

	if !acc.HasAny() {
		if readErr != nil {
			return apperror.UpstreamWrap("ai stream failed before any event", readErr)
		}
		return apperror.Upstreamf("ai stream completed without producing any events")
	}

	// Consistency pass: individual patches may have raced or partially
	// failed, so rewrite the union of the latest value of every field.
	snapshot := cs.eventToPatch(sessionID, acc.Snapshot())
	if err := cs.resultService.Upsert(ctx, sessionID, snapshot); err != nil {
		if wroteAny {
			// Partial patches landed, keep them rather than failing the job.
			cs.streamLogger.Printf("[WARN] consistency pass failed for session %s: %v", sessionID, err)
			return nil
		}
		return err
	}

	if readErr != nil {
		// Accumulated fields stay persisted, but a broken connection still
		// fails the job.
		return apperror.UpstreamWrap("ai stream ended early", readErr)
	}
	return nil
}

// eventToPatch converts raw event fields into typed entities. A field that
// fails to decode is dropped from the patch, consistent with the per-line
// skip policy.
func (cs *consumerService) eventToPatch(sessionID uuid.UUID, ev *aistream.Event) *ResultPatch {
	patch := &ResultPatch{}

	if ev.HasPlaces() {
		var places []entity.Place
		if err := json.Unmarshal(ev.Places, &places); err != nil {
			cs.streamLogger.Printf("[WARN] skipping undecodable places for session %s: %v", sessionID, err)
		} else {
			patch.Places = places
			patch.HasPlaces = true
		}
	}

	if ev.HasUserPreferences() {
		var prefs []entity.UserPreference
		if err := json.Unmarshal(ev.UserPreferences, &prefs); err != nil {
			cs.streamLogger.Printf("[WARN] skipping undecodable user_preferences for session %s: %v", sessionID, err)
		} else {
			patch.UserPreferences = prefs
			patch.HasPreferences = true
		}
	}

	patch.Justification = ev.Justification

	return patch
}
