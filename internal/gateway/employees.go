package gateway

import (
	"context"
	"net/http"
)

func (a *API) authed(method, path string) request {
	return request{method: method, path: path, token: a.token, auth: true}
}

func (a *API) DashboardCards(ctx context.Context) (DashboardCards, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, "/cards/dashboard-cards"))
	if err != nil {
		return DashboardCards{}, err
	}
	return enveloped[DashboardCards](resp)
}

func (a *API) ListEmployees(ctx context.Context, page, limit int) (EmployeePage, error) {
	req := a.authed(http.MethodGet, "/users")
	req.query = pageQuery(page, limit)
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return EmployeePage{}, err
	}
	return enveloped[EmployeePage](resp)
}

// AllEmployees lists every employee without paging, used for dropdowns.
func (a *API) AllEmployees(ctx context.Context) ([]Employee, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, "/users"))
	if err != nil {
		return nil, err
	}
	page, err := enveloped[EmployeePage](resp)
	if err != nil {
		return nil, err
	}
	return page.Employees, nil
}

func (a *API) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, idPath("/users", id)))
	if err != nil {
		return Employee{}, err
	}
	return enveloped[Employee](resp)
}

func (a *API) CreateEmployee(ctx context.Context, in EmployeeInput) (Ack, error) {
	req := a.authed(http.MethodPost, "/users")
	req.body = in
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Ack{}, err
	}
	return ack(resp), nil
}

func (a *API) UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) (Employee, error) {
	req := a.authed(http.MethodPut, idPath("/users", id))
	req.body = in
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Employee{}, err
	}
	return enveloped[Employee](resp)
}

func (a *API) DeleteEmployee(ctx context.Context, id int64) (Ack, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodDelete, idPath("/users", id)))
	if err != nil {
		return Ack{}, err
	}
	return ack(resp), nil
}
