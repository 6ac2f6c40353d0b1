package gateway

import (
	"context"
	"fmt"
	"net/http"
)

func (a *API) ProcessPayroll(ctx context.Context, in ProcessPayrollRequest) (Payroll, error) {
	req := a.authed(http.MethodPost, "/payroll/process")
	req.body = in
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Payroll{}, err
	}
	return enveloped[Payroll](resp)
}

func (a *API) ListPayrolls(ctx context.Context, page, limit int) (PayrollPage, error) {
	req := a.authed(http.MethodGet, "/payroll/all")
	req.query = pageQuery(page, limit)
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return PayrollPage{}, err
	}
	return enveloped[PayrollPage](resp)
}

func (a *API) EmployeePayroll(ctx context.Context, id int64) (Payroll, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, idPath("/payroll/all", id)))
	if err != nil {
		return Payroll{}, err
	}
	rec, err := enveloped[PayrollRecord](resp)
	return rec.Payroll, err
}

func (a *API) MyPayrolls(ctx context.Context) ([]Payroll, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, "/payroll/my"))
	if err != nil {
		return nil, err
	}
	return enveloped[[]Payroll](resp)
}

func (a *API) SalarySlip(ctx context.Context, id int64) (Payroll, error) {
	resp, err := a.c.send(ctx, a.authed(http.MethodGet, idPath("/payroll/my", id)))
	if err != nil {
		return Payroll{}, err
	}
	return enveloped[Payroll](resp)
}

// SlipName is the file name a downloaded slip is saved under.
func SlipName(id int64) string {
	return fmt.Sprintf("salary-slip-%d.pdf", id)
}

func (a *API) DownloadSlip(ctx context.Context, id int64) (Slip, error) {
	req := a.authed(http.MethodGet, fmt.Sprintf("/payroll/%d/download", id))
	resp, err := a.c.send(ctx, req)
	if err != nil {
		return Slip{}, err
	}
	if len(resp.body) == 0 {
		return Slip{}, &Error{Status: resp.status, Err: fmt.Errorf("empty slip document")}
	}
	contentType := resp.header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return Slip{Name: SlipName(id), ContentType: contentType, Data: resp.body}, nil
}
