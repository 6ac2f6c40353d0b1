package employee

import (
	"context"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/logger"
	"emsconsole/internal/validation"
)

type Service struct {
	client *gateway.Client
	seq    *listing.Sequencer
}

func NewService(client *gateway.Client, seq *listing.Sequencer) *Service {
	return &Service{client: client, seq: seq}
}

// List loads one page of employees together with the enum sets. A newer
// List for the same session supersedes this one.
func (s *Service) List(ctx context.Context, sess session.Session, req listing.PageRequest, f listing.Filter) (ListView, error) {
	api := s.client.WithToken(sess.Token)
	return listing.Load(s.seq, ctx, sess.ID+":employees", func(ctx context.Context) (ListView, error) {
		page, enums, err := listing.FanOut(ctx,
			func(ctx context.Context) (gateway.EmployeePage, error) { return api.ListEmployees(ctx, req.Page, req.Limit) },
			api.Enums,
		)
		if err != nil {
			return ListView{}, err
		}
		rows := listing.Apply(page.Employees, func(e gateway.Employee) bool { return matches(f, e) })
		return ListView{
			Page:   listing.Page[gateway.Employee]{Items: rows, Pager: listing.NewPager(req, page.TotalPages)},
			Enums:  enums,
			Filter: f,
		}, nil
	})
}

// Recent returns the newest employees for the admin dashboard.
func (s *Service) Recent(ctx context.Context, sess session.Session) ([]gateway.Employee, error) {
	page, err := s.client.WithToken(sess.Token).ListEmployees(ctx, 1, RecentLimit)
	if err != nil {
		return nil, err
	}
	return page.Employees, nil
}

func (s *Service) Get(ctx context.Context, sess session.Session, id int64) (gateway.Employee, error) {
	return s.client.WithToken(sess.Token).GetEmployee(ctx, id)
}

func (s *Service) EditView(ctx context.Context, sess session.Session, id int64) (EditView, error) {
	api := s.client.WithToken(sess.Token)
	emp, enums, err := listing.FanOut(ctx,
		func(ctx context.Context) (gateway.Employee, error) { return api.GetEmployee(ctx, id) },
		api.Enums,
	)
	if err != nil {
		return EditView{}, err
	}
	return EditView{Employee: emp, Enums: enums}, nil
}

func (s *Service) Create(ctx context.Context, sess session.Session, in gateway.EmployeeInput) (gateway.Ack, error) {
	api := s.client.WithToken(sess.Token)
	return forms.SubmitWithOptions(ctx, validation.Must("add_employee"), Values(in), s.env(api), MsgCreateFailed,
		func(ctx context.Context) (gateway.Ack, error) { return api.CreateEmployee(ctx, in) })
}

func (s *Service) Update(ctx context.Context, sess session.Session, id int64, in gateway.EmployeeInput) (gateway.Employee, error) {
	api := s.client.WithToken(sess.Token)
	return forms.SubmitWithOptions(ctx, validation.Must("update_employee"), Values(in), s.env(api), MsgUpdateFailed,
		func(ctx context.Context) (gateway.Employee, error) { return api.UpdateEmployee(ctx, id, in) })
}

func (s *Service) Delete(ctx context.Context, sess session.Session, id int64) (gateway.Ack, error) {
	ack, err := s.client.WithToken(sess.Token).DeleteEmployee(ctx, id)
	if err != nil {
		return gateway.Ack{}, forms.NewFault(err, MsgDeleteFailed)
	}
	return ack, nil
}

// env loads the option sets choice fields are checked against. Without
// them only presence is enforced.
func (s *Service) env(api *gateway.API) func(context.Context) validation.Env {
	return func(ctx context.Context) validation.Env {
		enums, err := api.Enums(ctx)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("enum options unavailable for employee form")
			return validation.Env{}
		}
		return forms.EnumEnv(enums)
	}
}
