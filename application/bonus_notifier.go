package application

import (
	"context"
	"fmt"
	"time"

	"bonusbot/application/dto"
	"bonusbot/domain/entities"
	"bonusbot/domain/events"
	"bonusbot/domain/interfaces"
	"bonusbot/infrastructure/observability"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// NotifySummary reports the outcome of one notifier pass
type NotifySummary struct {
	Artists   int
	Announced int
	Quiet     int // no transitions on the artist's local day
	Skipped   int // already announced for that day
	Failed    int
}

// BonusNotifier announces each artist's bonus transitions once per local calendar day
type BonusNotifier struct {
	roster        RosterReader
	artists       interfaces.ArtistRepository
	notifications interfaces.NotificationLogRepository
	resolver      interfaces.BonusResolver
	publisher     interfaces.EventPublisher
	announcers    []BonusAnnouncer
	defaultLoc    *time.Location
}

// NewBonusNotifier creates a notifier. announcers may be empty, in which case
// transitions are only published as events.
func NewBonusNotifier(
	roster RosterReader,
	artists interfaces.ArtistRepository,
	notifications interfaces.NotificationLogRepository,
	resolver interfaces.BonusResolver,
	publisher interfaces.EventPublisher,
	defaultLoc *time.Location,
	announcers ...BonusAnnouncer,
) *BonusNotifier {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &BonusNotifier{
		roster:        roster,
		artists:       artists,
		notifications: notifications,
		resolver:      resolver,
		publisher:     publisher,
		announcers:    announcers,
		defaultLoc:    defaultLoc,
	}
}

// Start schedules RunOnce on the cron spec, evaluated in the default timezone.
// Each artist is announced on the first pass after its local midnight, so the spec should fire
// at least hourly when artists span zones. Later passes that day are skipped by MarkSent.
// Returns a cleanup function that stops the scheduler and waits for a running pass.
func (n *BonusNotifier) Start(ctx context.Context, spec string) (func(), error) {
	logger := cron.PrintfLogger(log.StandardLogger())
	scheduler := cron.New(
		cron.WithLocation(n.defaultLoc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	_, err := scheduler.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := n.RunOnce(ctx, time.Now()); err != nil {
			log.WithError(err).Error("Bonus notifier pass failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid notify schedule %q: %w", spec, err)
	}

	scheduler.Start()
	log.WithFields(log.Fields{
		"schedule": spec,
		"timezone": n.defaultLoc.String(),
	}).Info("Bonus notifier started")

	return func() {
		<-scheduler.Stop().Done()
		log.Info("Bonus notifier stopped")
	}, nil
}

// RunOnce resolves and announces every cached artist's transitions for the
// local calendar day containing now. Per-artist failures are counted, not returned.
func (n *BonusNotifier) RunOnce(ctx context.Context, now time.Time) (NotifySummary, error) {
	zones, err := n.artistZones(ctx)
	if err != nil {
		return NotifySummary{}, err
	}

	artists := n.roster.Artists()
	summary := NotifySummary{Artists: len(artists)}

	for _, artist := range artists {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome, err := n.notifyArtist(ctx, artist, zones[artist], now)
		switch {
		case err != nil:
			log.WithFields(log.Fields{
				"artist": artist,
				"error":  err,
			}).Error("Failed to announce bonus transitions")
			summary.Failed++
		case outcome == outcomeAnnounced:
			summary.Announced++
		case outcome == outcomeAlreadySent:
			summary.Skipped++
		default:
			summary.Quiet++
		}
	}

	log.WithFields(log.Fields{
		"artists":   summary.Artists,
		"announced": summary.Announced,
		"quiet":     summary.Quiet,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("Completed bonus notifier pass")

	return summary, nil
}

type artistOutcome int

const (
	outcomeQuiet artistOutcome = iota
	outcomeAnnounced
	outcomeAlreadySent
)

func (n *BonusNotifier) notifyArtist(ctx context.Context, artist string, zone *entities.Artist, now time.Time) (artistOutcome, error) {
	loc, err := zone.Location(n.defaultLoc)
	if err != nil {
		return outcomeQuiet, err
	}
	localDay := entities.DayIn(now, loc)

	bonuses := n.resolver.Resolve(n.roster.Get(artist), localDay)
	announcement := dto.BonusAnnouncementDTO{
		Artist:   artist,
		Day:      localDay,
		Timezone: loc.String(),
		Bonuses:  bonuses,
	}
	observability.GetMetrics().RecordResolution(artist, len(announcement.Starting()), len(announcement.Ending()))

	if len(bonuses) == 0 {
		return outcomeQuiet, nil
	}

	// Marked before delivery so an overlapping pass cannot double-post
	fresh, err := n.notifications.MarkSent(ctx, artist, localDay)
	if err != nil {
		return outcomeQuiet, err
	}
	if !fresh {
		log.WithFields(log.Fields{
			"artist": artist,
			"day":    localDay.Format(entities.DateLayout),
		}).Debug("Bonus transitions already announced")
		return outcomeAlreadySent, nil
	}

	var announceErr error
	for _, announcer := range n.announcers {
		if err := announcer.Announce(ctx, announcement); err != nil {
			announceErr = fmt.Errorf("announce %s on %s: %w", artist, localDay.Format(entities.DateLayout), err)
		}
	}

	for _, bonus := range bonuses {
		event := events.NewBonusTransitionEvent(bonus, localDay, loc.String())
		if err := n.publisher.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"artist": artist,
				"bonus":  bonus.Label(),
				"error":  err,
			}).Warn("Failed to publish bonus transition event")
		}
	}

	if announceErr != nil {
		return outcomeQuiet, announceErr
	}

	log.WithFields(log.Fields{
		"artist":      artist,
		"day":         localDay.Format(entities.DateLayout),
		"transitions": len(bonuses),
	}).Info("Announced bonus transitions")
	return outcomeAnnounced, nil
}

// artistZones maps artist name to its settings; artists without a row use the default zone
func (n *BonusNotifier) artistZones(ctx context.Context) (map[string]*entities.Artist, error) {
	artists, err := n.artists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load artist settings: %w", err)
	}

	zones := make(map[string]*entities.Artist, len(artists))
	for _, a := range artists {
		zones[a.Name] = a
	}
	return zones, nil
}
