package lms

import "context"

type SupportService struct{ c Client }

func (s *SupportService) List(ctx context.Context, page PageRequest) (Page[SupportTicket], error) {
	return getPage[SupportTicket](ctx, s.c, "/support", page, nil)
}

func (s *SupportService) ByUser(ctx context.Context, userID string, page PageRequest) (Page[SupportTicket], error) {
	return getPage[SupportTicket](ctx, s.c, apiPath("support", "user", userID), page, nil)
}

func (s *SupportService) Create(ctx context.Context, in SupportTicketInput) (SupportTicket, error) {
	return send[SupportTicket](ctx, s.c.Post, "/support", in)
}

// Assign hands the ticket over to an admin.
func (s *SupportService) Assign(ctx context.Context, ticketID, adminID string) error {
	body := struct {
		AdminID string `json:"adminId"`
	}{adminID}
	return s.c.Post(ctx, apiPath("support", ticketID, "assign"), body, nil)
}

func (s *SupportService) Resolve(ctx context.Context, ticketID string) error {
	return s.c.Post(ctx, apiPath("support", ticketID, "resolve"), struct{}{}, nil)
}

func (s *SupportService) Delete(ctx context.Context, ticketID string) error {
	return s.c.Delete(ctx, apiPath("support", ticketID), nil)
}
