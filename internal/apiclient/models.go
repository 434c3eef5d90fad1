package apiclient

import "time"

// User is the authenticated user returned by the login endpoint.
type User struct {
	ID        string `json:"_id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	TenantID  string `json:"tenantId,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput is the body of note create and update calls.
type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// Usage is a used/limit pair. A negative limit means unlimited.
type Usage struct {
	Used  int64 `json:"used"`
	Limit int64 `json:"limit"`
}

type Subscription struct {
	Plan         string    `json:"plan"`
	PlanName     string    `json:"planName"`
	Price        float64   `json:"price"`
	BillingCycle string    `json:"billingCycle"`
	Status       string    `json:"status"`
	NextBilling  time.Time `json:"nextBilling"`
	Usage        struct {
		Notes   Usage `json:"notes"`
		Users   Usage `json:"users"`
		Storage Usage `json:"storage"`
	} `json:"usage"`
}

type Invoice struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Tax           float64   `json:"tax"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
}
