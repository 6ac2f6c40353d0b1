package gateway

import (
	"context"
	"net/http"
)

func (a *API) MyProfile(ctx context.Context) (Employee, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, "/profile/me"))
	if err != nil {
		return Employee{}, err
	}
	return enveloped[Employee](resp)
}

func (a *API) SaveBasicInfo(ctx context.Context, in BasicInfo) (Employee, error) {
	return a.saveProfile(ctx, "/profile/basic", in)
}

func (a *API) SavePersonalInfo(ctx context.Context, in PersonalInfo) (Employee, error) {
	return a.saveProfile(ctx, "/profile/personal", in)
}

func (a *API) SaveEducationInfo(ctx context.Context, in EducationInfo) (Employee, error) {
	return a.saveProfile(ctx, "/profile/education", in)
}

func (a *API) saveProfile(ctx context.Context, path string, body any) (Employee, error) {
	req := a.authed(http.MethodPost, path)
	req.body = body
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Employee{}, err
	}
	return enveloped[Employee](resp)
}
