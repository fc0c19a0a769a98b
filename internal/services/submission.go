package services

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jared-cannon/app-registry/internal/models"
)

// PathwayMode selects how a submission is validated and what happens on success
type PathwayMode int

const (
	// ModePersistAndRedirect reports per-field errors, stores accepted
	// records and redirects right away.
	ModePersistAndRedirect PathwayMode = iota
	// ModeValidateAndDelayedRedirect reports a single status message and
	// redirects after a delay. Nothing is stored.
	ModeValidateAndDelayedRedirect
)

func (m PathwayMode) String() string {
	switch m {
	case ModePersistAndRedirect:
		return "persist"
	case ModeValidateAndDelayedRedirect:
		return "quick"
	default:
		return "unknown"
	}
}

// Event names published on the apps channel
const (
	AppsChannel     = "apps"
	EventAppCreated = "app.created"
)

// Notifier receives events about stored records
type Notifier interface {
	Broadcast(channel string, event string, data interface{})
}

// Outcome is the result of one submission
type Outcome struct {
	Accepted      bool          `json:"accepted"`
	FieldErrors   FieldErrors   `json:"field_errors,omitempty"`
	Status        string        `json:"status,omitempty"`
	Redirect      string        `json:"redirect,omitempty"`
	RedirectDelay time.Duration `json:"redirect_delay,omitempty"`
}

// Pathway validates a collected form and, depending on its mode, stores the record
type Pathway struct {
	mode     PathwayMode
	store    *RecordStore
	notifier Notifier
	redirect string
	delay    time.Duration
}

// NewPersistPathway creates the registration form pathway.
// notifier may be nil.
func NewPersistPathway(store *RecordStore, notifier Notifier, successRedirect string) *Pathway {
	return &Pathway{
		mode:     ModePersistAndRedirect,
		store:    store,
		notifier: notifier,
		redirect: successRedirect,
	}
}

// NewQuickPathway creates the quick form pathway redirecting to listing after delay
func NewQuickPathway(listing string, delay time.Duration) *Pathway {
	return &Pathway{
		mode:     ModeValidateAndDelayedRedirect,
		redirect: listing,
		delay:    delay,
	}
}

// Mode returns the pathway mode
func (p *Pathway) Mode() PathwayMode {
	return p.mode
}

// Submit validates candidate and performs the accept path of the pathway.
// Rejections come back as an Outcome; the error is reserved for failed writes.
func (p *Pathway) Submit(candidate models.AppRecord) (*Outcome, error) {
	submissionID := uuid.New().String()[:8]

	if p.mode == ModeValidateAndDelayedRedirect {
		if msg := ValidateLegacy(candidate); msg != "" {
			log.Printf("[Submit %s] %s rejected", submissionID, p.mode)
			return &Outcome{Status: msg}, nil
		}
		log.Printf("[Submit %s] %s accepted %q, redirecting in %s", submissionID, p.mode, candidate.Name, p.delay)
		return &Outcome{
			Accepted:      true,
			Status:        LegacyMsgSuccess,
			Redirect:      p.redirect,
			RedirectDelay: p.delay,
		}, nil
	}

	if errs := ValidateApp(candidate); len(errs) > 0 {
		log.Printf("[Submit %s] %s rejected, %d invalid fields", submissionID, p.mode, len(errs))
		return &Outcome{FieldErrors: errs}, nil
	}

	if err := p.store.Prepend(candidate); err != nil {
		return nil, models.NewStorageError(p.store.Slot(), err)
	}
	log.Printf("[Submit %s] %s stored %q", submissionID, p.mode, candidate.Name)

	if p.notifier != nil {
		p.notifier.Broadcast(AppsChannel, EventAppCreated, map[string]interface{}{
			"index": 0,
			"name":  candidate.Name,
		})
	}

	return &Outcome{
		Accepted: true,
		Redirect: p.redirect,
	}, nil
}
