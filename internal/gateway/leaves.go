package gateway

import (
	"context"
	"net/http"
)

func (a *API) ListLeaveTypes(ctx context.Context) ([]LeaveType, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, "/leavetype"))
	if err != nil {
		return nil, err
	}
	return enveloped[[]LeaveType](resp)
}

func (a *API) GetLeaveType(ctx context.Context, id int64) (LeaveType, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, idPath("/leavetype", id)))
	if err != nil {
		return LeaveType{}, err
	}
	return enveloped[LeaveType](resp)
}

func (a *API) CreateLeaveType(ctx context.Context, in LeaveTypeInput) (Ack, error) {
	req := a.authed(http.MethodPost, "/leavetype")
	req.body = in
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Ack{}, err
	}
	return ack(resp), nil
}

func (a *API) UpdateLeaveType(ctx context.Context, id int64, in LeaveTypeInput) (LeaveType, error) {
	req := a.authed(http.MethodPut, idPath("/leavetype", id))
	req.body = in
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return LeaveType{}, err
	}
	return enveloped[LeaveType](resp)
}

func (a *API) DeleteLeaveType(ctx context.Context, id int64) (Ack, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodDelete, idPath("/leavetype", id)))
	if err != nil {
		return Ack{}, err
	}
	return ack(resp), nil
}

func (a *API) ApplyLeave(ctx context.Context, in LeaveInput) (Leave, error) {
	req := a.authed(http.MethodPost, "/leaves")
	req.body = in
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Leave{}, err
	}
	return enveloped[Leave](resp)
}

// MyLeaves lists the leaves of the token's owner.
func (a *API) MyLeaves(ctx context.Context) ([]Leave, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, "/leaves"))
	if err != nil {
		return nil, err
	}
	return enveloped[[]Leave](resp)
}

func (a *API) ListLeaves(ctx context.Context, page, limit int) (LeavePage, error) {
	req := a.authed(http.MethodGet, "/leaves/allLeave")
	req.query = pageQuery(page, limit)
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return LeavePage{}, err
	}
	return enveloped[LeavePage](resp)
}

func (a *API) GetLeave(ctx context.Context, id int64) (Leave, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, idPath("/leaves/allLeave", id)))
	if err != nil {
		return Leave{}, err
	}
	return enveloped[Leave](resp)
}

func (a *API) UpdateLeave(ctx context.Context, id int64, in LeaveInput) (Leave, error) {
	req := a.authed(http.MethodPut, idPath("/leaves", id))
	req.body = in
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Leave{}, err
	}
	return enveloped[Leave](resp)
}
