// Package orchestrator owns each browser session's application state and
// applies every user action to it.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"villafinder/models"
	"villafinder/services/auth"
	"villafinder/services/booking"
	"villafinder/services/catalog"
	"villafinder/services/details"
	"villafinder/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const oauthStateTTL = 10 * time.Minute

// Sessions hands out the key/value store of one session.
type Sessions interface {
	Scope(sessionID string) session.Store
}

// Result is the outcome of one Dispatch.
type Result struct {
	Events   []Event `json:"events"`
	View     View    `json:"view"`
	Redirect string  `json:"redirect,omitempty"`
}

// Orchestrator applies commands to session state.
type Orchestrator struct {
	Sessions Sessions
	Auth     auth.Service
	Social   auth.IdentityProvider // nil disables third-party sign-in
	Catalog  catalog.Service
	Logger   *zap.Logger

	BannerTTL    time.Duration
	ToastDelay   time.Duration
	Now          func() time.Time
	NewBookingID func() string

	locks sessionLocks
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// load reads the session state; a missing state is a fresh session.
func (o *Orchestrator) load(ctx context.Context, store session.Store) (*AppState, error) {
	st := &AppState{}
	if _, err := session.GetJSON(ctx, store, session.KeyState, st); err != nil {
		return nil, err
	}
	if st.Identity != nil {
		token, err := store.Get(ctx, session.KeyUserToken)
		switch {
		case err == nil:
			st.Identity.Token = token
		case !errors.Is(err, session.ErrNotFound):
			return nil, err
		}
	}
	return st, nil
}

// update runs fn on the locked state and always saves it, so that
// validation errors recorded by fn are kept.
func (o *Orchestrator) update(ctx context.Context, sessionID string, fn func(st *AppState, store session.Store) error) error {
	unlock := o.locks.lock(sessionID)
	defer unlock()

	store := o.Sessions.Scope(sessionID)
	st, err := o.load(ctx, store)
	if err != nil {
		return err
	}
	fnErr := fn(st, store)
	if err := session.SetJSON(ctx, store, session.KeyState, st, 0); err != nil {
		return err
	}
	return fnErr
}

// Dispatch applies cmd to the session and renders the resulting view.
// Validation and auth failures are returned together with the view.
func (o *Orchestrator) Dispatch(ctx context.Context, sessionID string, cmd Command) (*Result, error) {
	res := &Result{Events: []Event{}}
	var err error

	switch c := cmd.(type) {
	case RequestSignIn:
		err = o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
			st.PendingBooking = c.ForBooking
			st.SignIn = SignInPanel{Open: true, ForBooking: c.ForBooking}
			return nil
		})
	case CloseSignIn:
		err = o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
			st.SignIn.Open = false
			st.SignIn.Error = ""
			return nil
		})
	case SignIn:
		err = o.signIn(ctx, sessionID, c, res)
	case StartSocialSignIn:
		err = o.startSocial(ctx, sessionID, res)
	case CompleteSocialSignIn:
		err = o.completeSocial(ctx, sessionID, c, res)
	case SignOut:
		err = o.update(ctx, sessionID, func(st *AppState, store session.Store) error {
			st.Identity = nil
			st.PendingBooking = false
			st.Booking = nil
			st.SignIn = SignInPanel{}
			res.Events = append(res.Events, Event{Type: EventSignedOut})
			return store.Delete(ctx, session.KeyUserToken)
		})
	case ToggleTheme:
		err = o.toggleTheme(ctx, sessionID, res)
	case Search:
		err = o.search(ctx, sessionID, c.Filter, res)
	case ViewDetails:
		err = o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
			l, ok := st.findListing(c.ListingID)
			if !ok {
				return ErrListingNotFound
			}
			st.Selected = &l
			st.Details = details.Opened()
			return nil
		})
	case SelectTab:
		err = o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
			if !st.Details.Open || st.Selected == nil {
				return ErrDetailsClosed
			}
			return st.Details.Select(c.Tab)
		})
	case CloseDetails:
		err = o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
			st.Details = details.Panel{}
			return nil
		})
	case BookNow:
		err = o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
			l, ok := st.findListing(c.ListingID)
			if !ok {
				return ErrListingNotFound
			}
			st.Selected = &l
			if st.Identity == nil {
				st.PendingBooking = true
				st.SignIn = SignInPanel{Open: true, ForBooking: true}
				res.Events = append(res.Events, Event{Type: EventSignInRequired, ListingID: l.ID})
				return nil
			}
			st.Details.Open = false
			st.Booking = booking.Open(l)
			res.Events = append(res.Events, Event{Type: EventBookingOpened, ListingID: l.ID})
			return nil
		})
	case UpdateDraft:
		err = o.withBooking(ctx, sessionID, func(st *AppState) error {
			st.Booking.Update(c.Update)
			return nil
		})
	case NextStep:
		err = o.withBooking(ctx, sessionID, func(st *AppState) error {
			return st.Booking.Next()
		})
	case PreviousStep:
		err = o.withBooking(ctx, sessionID, func(st *AppState) error {
			st.Booking.Back()
			return nil
		})
	case SubmitBooking:
		err = o.submit(ctx, sessionID, c.Update, res)
	case CloseBooking:
		err = o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
			if st.Booking != nil {
				res.Events = append(res.Events, Event{Type: EventBookingClosed, ListingID: st.Booking.Listing.ID})
			}
			st.Booking = nil
			return nil
		})
	case DismissBanner:
		err = o.Sessions.Scope(sessionID).Delete(ctx, session.KeyBanner)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	view, viewErr := o.View(ctx, sessionID)
	if viewErr != nil {
		return nil, viewErr
	}
	res.View = view
	if confirmed := findEvent(res.Events, EventBookingConfirmed); confirmed != nil {
		res.View.Toast = &Toast{BookingID: confirmed.BookingID, DelayMs: o.ToastDelay.Milliseconds()}
	}
	if err != nil {
		o.logger().Debug("Command refused", zap.String("command", cmd.commandName()), zap.Error(err))
	}
	return res, err
}

func findEvent(events []Event, t EventType) *Event {
	for i := range events {
		if events[i].Type == t {
			return &events[i]
		}
	}
	return nil
}

func (o *Orchestrator) withBooking(ctx context.Context, sessionID string, fn func(st *AppState) error) error {
	return o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
		if st.Booking == nil {
			return ErrNoBooking
		}
		return fn(st)
	})
}

// signedIn records identity and resumes a pending booking at most once.
// Callers hold the session lock, which makes consuming the flag atomic.
func (o *Orchestrator) signedIn(st *AppState, identity *models.Identity, res *Result) {
	st.Identity = identity
	st.SignIn = SignInPanel{}
	res.Events = append(res.Events, Event{Type: EventSignedIn, Value: identity.Email})

	if !st.PendingBooking {
		return
	}
	st.PendingBooking = false
	if st.Selected == nil {
		return
	}
	st.Details.Open = false
	st.Booking = booking.Open(*st.Selected)
	res.Events = append(res.Events, Event{Type: EventBookingResumed, ListingID: st.Selected.ID})
	o.logger().Info("Resumed deferred booking", zap.String("listing", st.Selected.ID))
}

func (o *Orchestrator) signIn(ctx context.Context, sessionID string, c SignIn, res *Result) error {
	err := o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
		if st.SignIn.inFlight(o.now()) {
			return ErrSignInInFlight
		}
		st.SignIn.InFlightAt = o.now()
		st.SignIn.Error = ""
		return nil
	})
	if err != nil {
		return err
	}

	identity, authErr := o.Auth.Authenticate(ctx, o.Sessions.Scope(sessionID), c.Mode, c.Credentials)

	return o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
		st.SignIn.InFlightAt = time.Time{}
		if authErr != nil {
			st.SignIn.Open = true
			st.SignIn.Error = userMessage(authErr)
			return authErr
		}
		o.signedIn(st, identity, res)
		return nil
	})
}

func userMessage(err error) string {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return auth.MsgNetwork
}

func (o *Orchestrator) startSocial(ctx context.Context, sessionID string, res *Result) error {
	if o.Social == nil {
		return ErrSocialUnavailable
	}
	state := uuid.NewString()
	if err := o.Sessions.Scope(sessionID).Set(ctx, session.KeyOAuthState, state, oauthStateTTL); err != nil {
		return err
	}
	u, err := o.Social.Initiate(ctx, state)
	if err != nil {
		return &auth.Error{Kind: auth.KindUnavailable, Message: auth.MsgSocialDisabled, Err: err}
	}
	res.Redirect = u
	return nil
}

func (o *Orchestrator) completeSocial(ctx context.Context, sessionID string, c CompleteSocialSignIn, res *Result) error {
	if o.Social == nil {
		return ErrSocialUnavailable
	}
	store := o.Sessions.Scope(sessionID)
	expected, err := store.Get(ctx, session.KeyOAuthState)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	if err := store.Delete(ctx, session.KeyOAuthState); err != nil {
		return err
	}
	if expected == "" || c.State != expected {
		return ErrOAuthState
	}

	profile, profileErr := o.Social.Profile(ctx, c.Code)

	return o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
		if profileErr != nil {
			st.SignIn.Open = true
			st.SignIn.Error = auth.MsgSocialFailed
			return &auth.Error{Kind: auth.KindUnauthorized, Message: auth.MsgSocialFailed, Err: profileErr}
		}
		o.signedIn(st, &models.Identity{
			Email:    profile.Email,
			Name:     profile.Name,
			Provider: models.ProviderGoogle,
		}, res)
		return nil
	})
}

func (o *Orchestrator) toggleTheme(ctx context.Context, sessionID string, res *Result) error {
	unlock := o.locks.lock(sessionID)
	defer unlock()

	store := o.Sessions.Scope(sessionID)
	current, err := readTheme(ctx, store)
	if err != nil {
		return err
	}
	next := models.ThemeDark
	if current == models.ThemeDark {
		next = models.ThemeLight
	}
	if err := store.Set(ctx, session.KeyTheme, next, 0); err != nil {
		return err
	}
	res.Events = append(res.Events, Event{Type: EventThemeChanged, Value: next})
	return nil
}

func readTheme(ctx context.Context, store session.Store) (string, error) {
	theme, err := store.Get(ctx, session.KeyTheme)
	if errors.Is(err, session.ErrNotFound) {
		return models.ThemeLight, nil
	}
	if err != nil {
		return "", err
	}
	if theme != models.ThemeDark {
		return models.ThemeLight, nil
	}
	return theme, nil
}

// search runs the query outside the session lock; only the latest query
// of a session may change the displayed results.
func (o *Orchestrator) search(ctx context.Context, sessionID string, filter models.Filter, res *Result) error {
	var seq uint64
	if err := o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
		seq = st.Catalog.Begin(filter)
		return nil
	}); err != nil {
		return err
	}

	listings, searchErr := o.Catalog.Search(ctx, filter)
	if searchErr != nil {
		o.logger().Warn("Listing search failed", zap.Error(searchErr))
	}

	return o.update(ctx, sessionID, func(st *AppState, _ session.Store) error {
		if !st.Catalog.Complete(seq, listings, searchErr) {
			res.Events = append(res.Events, Event{Type: EventSearchSuperseded})
			return nil
		}
		if searchErr != nil {
			res.Events = append(res.Events, Event{Type: EventSearchFailed, Value: catalog.MsgFetchFailed})
			return nil
		}
		res.Events = append(res.Events, Event{Type: EventSearchCompleted, Value: fmt.Sprint(len(listings))})
		return nil
	})
}

func (o *Orchestrator) submit(ctx context.Context, sessionID string, u models.DraftUpdate, res *Result) error {
	return o.update(ctx, sessionID, func(st *AppState, store session.Store) error {
		if st.Booking == nil {
			return ErrNoBooking
		}
		if st.Identity == nil {
			st.Booking = nil
			return ErrNoBooking
		}
		st.Booking.Update(u)
		newID := o.NewBookingID
		if newID == nil {
			newID = booking.NewBookingID
		}
		conf, err := st.Booking.Submit(o.now(), newID)
		if err != nil {
			return err
		}
		if err := session.SetJSON(ctx, store, session.KeyBanner, newBanner(conf), o.bannerTTL()); err != nil {
			st.Booking.Errors = map[string]string{booking.FormErrorKey: "There was a problem processing your booking."}
			return err
		}
		st.Booking = nil
		res.Events = append(res.Events, Event{Type: EventBookingConfirmed, ListingID: conf.Listing.ID, BookingID: conf.BookingID})
		o.logger().Info("Booking confirmed",
			zap.String("bookingId", conf.BookingID),
			zap.String("listing", conf.Listing.ID),
			zap.Float64("total", conf.TotalPrice))
		return nil
	})
}

func (o *Orchestrator) bannerTTL() time.Duration {
	if o.BannerTTL <= 0 {
		return 10 * time.Second
	}
	return o.BannerTTL
}
