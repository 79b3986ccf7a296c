package processor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/solwatch/walletwatch/internal/alerts"
	"github.com/solwatch/walletwatch/internal/config"
	"github.com/solwatch/walletwatch/internal/event"
	"github.com/solwatch/walletwatch/internal/ledger"
	"github.com/solwatch/walletwatch/internal/metrics"
	"github.com/solwatch/walletwatch/internal/watchlist"
)

// WatchlistSource yields the current watch-list snapshot. It returns an
// error when no snapshot is available, which fails the whole batch.
type WatchlistSource interface {
	Resolver() (*watchlist.Resolver, error)
}

// Processor runs the event-filtering, scoring and alerting pipeline over
// incoming webhook batches.
type Processor struct {
	cfg          *config.Config
	watch        WatchlistSource
	accountant   *ledger.Accountant
	cooldown     *CooldownGate
	sender       alerts.Sender
	log          *logrus.Logger
	watchedTypes map[string]struct{}
	now          func() time.Time
}

// New creates a processor. The cooldown gate is injected so callers own its
// lifecycle and tests can share or reset it.
func New(
	cfg *config.Config,
	watch WatchlistSource,
	cooldown *CooldownGate,
	sender alerts.Sender,
	log *logrus.Logger,
) *Processor {
	watchedTypes := make(map[string]struct{}, len(cfg.WatchedTypes))
	for _, t := range cfg.WatchedTypes {
		watchedTypes[t] = struct{}{}
	}

	return &Processor{
		cfg:          cfg,
		watch:        watch,
		accountant:   ledger.New(cfg.NativeDecimals, cfg.StableMints),
		cooldown:     cooldown,
		sender:       sender,
		log:          log,
		watchedTypes: watchedTypes,
		now:          time.Now,
	}
}

// BatchSummary is the externally observable outcome of one batch.
type BatchSummary struct {
	Received           int `json:"received"`
	TypeMatched        int `json:"type_matched"`
	Tracked            int `json:"tracked"`
	CooldownSuppressed int `json:"cooldown_suppressed"`
	TriggerFiltered    int `json:"trigger_filtered"`
	Emitted            int `json:"emitted"`
}

// ProcessBatch runs every event through the filter chain in order: type,
// watch-list membership, cooldown, trigger evaluation, emit. A failing
// filter moves to the next event; nothing per-event aborts the batch. Once
// the emitted count reaches the per-batch cap, remaining events are left
// unprocessed.
//
// The only hard failure is an unavailable watch list, since no filtering is
// meaningful without it.
func (p *Processor) ProcessBatch(ctx context.Context, raws []map[string]any) (BatchSummary, error) {
	start := time.Now()

	var summary BatchSummary
	summary.Received = len(raws)
	defer func() {
		metrics.RecordBatch(time.Since(start), summary.Received)
	}()

	resolver, err := p.watch.Resolver()
	if err != nil {
		return summary, err
	}

	for _, raw := range raws {
		if summary.Emitted >= p.cfg.MaxAlertsPerBatch {
			p.log.WithField("cap", p.cfg.MaxAlertsPerBatch).Info("Per-batch alert cap reached, stopping")
			metrics.RecordFiltered("cap")
			break
		}

		ev := event.Normalize(raw)

		if !p.typeWatched(ev.Type) {
			metrics.RecordFiltered("type")
			continue
		}
		summary.TypeMatched++

		entity, ok := resolver.Resolve(ev.Actor)
		if ev.Actor == "" || !ok {
			metrics.RecordFiltered("actor")
			continue
		}
		summary.Tracked++

		now := p.now().Unix()
		if p.cooldown.Suppressed(ev.Actor, now) {
			summary.CooldownSuppressed++
			metrics.AlertsSuppressed.Inc()
			p.log.WithFields(logrus.Fields{
				"wallet": alerts.ShortenAddress(ev.Actor),
				"tx":     alerts.ShortenSignature(ev.Signature),
			}).Info("Alert suppressed (cooldown)")
			continue
		}

		mv := p.accountant.Account(ev, ev.Actor)

		if !p.evaluateTriggers(mv) {
			summary.TriggerFiltered++
			metrics.RecordFiltered("trigger")
			continue
		}

		p.emitAlert(ctx, entity, ev, mv, now)
		summary.Emitted++
	}

	return summary, nil
}

func (p *Processor) typeWatched(eventType string) bool {
	if len(p.watchedTypes) == 0 {
		return true
	}
	_, ok := p.watchedTypes[eventType]
	return ok
}

// emitAlert composes and sends the alert, then marks the wallet's cooldown.
// Delivery is at-most-once: a failed send is logged but still consumes the
// cooldown window, so it is not retried by the next event.
func (p *Processor) emitAlert(ctx context.Context, entity watchlist.TrackedEntity, ev event.Event, mv ledger.NetMovement, now int64) {
	score := p.scoreMovement(mv)
	action := classifyAction(mv)

	payload := &alerts.AlertPayload{
		DisplayName: entity.DisplayName,
		Icon:        entity.Icon,
		Actor:       ev.Actor,
		ActorShort:  alerts.ShortenAddress(ev.Actor),
		Action:      alerts.Action(action),
		EventType:   ev.Type,
		NativeDelta: mv.NativeDelta,
		StableDelta: mv.StableDelta,
		LargestIn:   toTokenLeg(mv.LargestIn),
		LargestOut:  toTokenLeg(mv.LargestOut),
		Score:       score,
		Escalate:    score >= p.cfg.EscalationScore,
		Signature:   ev.Signature,
		SigShort:    alerts.ShortenSignature(ev.Signature),
		Timestamp:   time.Unix(now, 0),
		Environment: p.cfg.Environment,
	}

	err := p.sender.Send(ctx, payload)
	if err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"wallet": payload.ActorShort,
			"tx":     payload.SigShort,
		}).Error("Failed to send alert")
	}
	metrics.RecordAlert(action, score, err)

	p.cooldown.Record(ev.Actor, now)
}

func toTokenLeg(leg *ledger.Leg) *alerts.TokenLeg {
	if leg == nil {
		return nil
	}
	return &alerts.TokenLeg{Mint: leg.Mint, Amount: leg.Amount}
}
