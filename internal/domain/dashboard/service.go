package dashboard

import (
	"context"

	"emsconsole/internal/domain/listing"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/logger"
)

// View is the dashboard for one role. Admins get the cards and recent hires;
// employees get their own record.
type View struct {
	Role    string                  `json:"role"`
	Cards   *gateway.DashboardCards `json:"cards,omitempty"`
	Recent  []gateway.Employee      `json:"recentEmployees,omitempty"`
	Me      *gateway.Employee       `json:"me,omitempty"`
	Welcome string                  `json:"welcome,omitempty"`
}

// RecentSource lists the newest employees.
type RecentSource interface {
	Recent(ctx context.Context, sess session.Session) ([]gateway.Employee, error)
}

// Welcomer hands out the once-per-session welcome notice.
type Welcomer interface {
	TakeWelcome(ctx context.Context, sess session.Session) (string, bool, error)
}

type Service struct {
	client   *gateway.Client
	recent   RecentSource
	welcomer Welcomer
}

func NewService(client *gateway.Client, recent RecentSource, welcomer Welcomer) *Service {
	return &Service{client: client, recent: recent, welcomer: welcomer}
}

func (s *Service) Load(ctx context.Context, sess session.Session) (View, error) {
	view := View{Role: sess.Role}
	api := s.client.WithToken(sess.Token)

	if sess.IsAdmin() {
		cards, recent, err := listing.FanOut(ctx,
			api.DashboardCards,
			func(ctx context.Context) ([]gateway.Employee, error) { return s.recent.Recent(ctx, sess) },
		)
		if err != nil {
			return View{}, err
		}
		view.Cards = &cards
		view.Recent = recent
	} else {
		me, err := api.MyProfile(ctx)
		if err != nil {
			return View{}, err
		}
		view.Me = &me
	}

	msg, shown, err := s.welcomer.TakeWelcome(ctx, sess)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("session_id", sess.ID).Msg("welcome flag update failed")
	} else if shown {
		view.Welcome = msg
	}
	return view, nil
}
