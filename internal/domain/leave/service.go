package leave

import (
	"context"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

type Service struct {
	client *gateway.Client
	seq    *listing.Sequencer
}

func NewService(client *gateway.Client, seq *listing.Sequencer) *Service {
	return &Service{client: client, seq: seq}
}

func (s *Service) ListTypes(ctx context.Context, sess session.Session) ([]gateway.LeaveType, error) {
	return s.client.WithToken(sess.Token).ListLeaveTypes(ctx)
}

func (s *Service) GetType(ctx context.Context, sess session.Session, id int64) (gateway.LeaveType, error) {
	return s.client.WithToken(sess.Token).GetLeaveType(ctx, id)
}

func (s *Service) CreateType(ctx context.Context, sess session.Session, in gateway.LeaveTypeInput) (gateway.Ack, error) {
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("leave_type"), TypeValues(in), validation.Env{}, MsgTypeCreateFailed,
		func(ctx context.Context) (gateway.Ack, error) { return api.CreateLeaveType(ctx, in) })
}

func (s *Service) UpdateType(ctx context.Context, sess session.Session, id int64, in gateway.LeaveTypeInput) (gateway.LeaveType, error) {
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("leave_type"), TypeValues(in), validation.Env{}, MsgTypeUpdateFailed,
		func(ctx context.Context) (gateway.LeaveType, error) { return api.UpdateLeaveType(ctx, id, in) })
}

func (s *Service) DeleteType(ctx context.Context, sess session.Session, id int64) (gateway.Ack, error) {
	ack, err := s.client.WithToken(sess.Token).DeleteLeaveType(ctx, id)
	if err != nil {
		return gateway.Ack{}, forms.NewFault(err, MsgTypeDeleteFailed)
	}
	return ack, nil
}

// Apply files a leave for the session's own user.
func (s *Service) Apply(ctx context.Context, sess session.Session, in gateway.LeaveInput) (Leave, error) {
	in.Status = ""
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("apply_leave"), Values(in), validation.Env{}, MsgApplyFailed,
		func(ctx context.Context) (Leave, error) { return api.ApplyLeave(ctx, in) })
}

func (s *Service) History(ctx context.Context, sess session.Session) ([]HistoryEntry, error) {
	leaves, err := s.client.WithToken(sess.Token).MyLeaves(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, HistoryEntry{Leave: l, Days: Days(l)})
	}
	return out, nil
}

// List loads one page of every employee's leaves for the admin screen.
func (s *Service) List(ctx context.Context, sess session.Session, req listing.PageRequest) (listing.Page[Leave], error) {
	api := s.client.WithToken(sess.Token)
	return listing.Load(s.seq, ctx, sess.ID+":leaves", func(ctx context.Context) (listing.Page[Leave], error) {
		page, err := api.ListLeaves(ctx, req.Page, req.Limit)
		if err != nil {
			return listing.Page[Leave]{}, err
		}
		return listing.Page[Leave]{Items: page.Leaves, Pager: listing.NewPager(req, page.TotalPages)}, nil
	})
}

func (s *Service) Get(ctx context.Context, sess session.Session, id int64) (Leave, error) {
	return s.client.WithToken(sess.Token).GetLeave(ctx, id)
}

func (s *Service) EditView(ctx context.Context, sess session.Session, id int64) (EditView, error) {
	api := s.client.WithToken(sess.Token)
	l, types, err := listing.FanOut(ctx,
		func(ctx context.Context) (Leave, error) { return api.GetLeave(ctx, id) },
		api.ListLeaveTypes,
	)
	if err != nil {
		return EditView{}, err
	}
	return EditView{Leave: l, LeaveTypes: types, Statuses: []string{StatusPending, StatusApproved, StatusRejected}}, nil
}

// Update applies an admin's edit: type, dates and status.
func (s *Service) Update(ctx context.Context, sess session.Session, id int64, in gateway.LeaveInput) (Leave, error) {
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("edit_leave"), Values(in), validation.Env{}, MsgUpdateFailed,
		func(ctx context.Context) (Leave, error) { return api.UpdateLeave(ctx, id, in) })
}
