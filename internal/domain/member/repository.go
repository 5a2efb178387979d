package member

import "context"

// Contact is the projection used for campaign audiences.
type Contact struct {
	MemberID uint
	Name     string
	Email    string
}

// Repository persists members.
type Repository interface {
	Create(ctx context.Context, member *Member) error
	Update(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	GetByNumber(ctx context.Context, memberNumber string) (*Member, error)
	// List returns a page of members. A non-empty search matches name,
	// email or member number.
	List(ctx context.Context, offset, limit int, search string) ([]*Member, int64, error)
	// ListContacts returns the email contacts for a campaign audience.
	// Members without an email address are excluded.
	ListContacts(ctx context.Context, activeOnly bool) ([]Contact, error)
	Delete(ctx context.Context, id uint) error
}
