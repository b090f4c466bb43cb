package lms

import "context"

type GroupService struct{ c Client }

func (s *GroupService) ByInstructor(ctx context.Context, instructorID string, page PageRequest) (Page[Group], error) {
	return getPage[Group](ctx, s.c, apiPath("groups", "instructor", instructorID), page, nil)
}

func (s *GroupService) Get(ctx context.Context, id string) (Group, error) {
	return getOne[Group](ctx, s.c, apiPath("groups", id))
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (Group, error) {
	return send[Group](ctx, s.c.Post, "/groups", in)
}

func (s *GroupService) Update(ctx context.Context, id string, in GroupInput) (Group, error) {
	return send[Group](ctx, s.c.Put, apiPath("groups", id), in)
}

func (s *GroupService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, apiPath("groups", id), nil)
}
