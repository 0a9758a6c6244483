package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// AdminClient provides access to the Supabase Admin API for user management.
// It is used by the seed tool to provision the portfolio owner's login,
// not by the request path.
type AdminClient struct {
	client supabaseClient
}

// NewAdminClient creates a new Supabase Admin API client.
// Requires the service role key (SUPABASE_KEY).
func NewAdminClient(supabaseURL, serviceKey string) *AdminClient {
	return &AdminClient{client: newSupabaseClient(supabaseURL, serviceKey)}
}

// CreateUserRequest is the payload for creating a new user
type CreateUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// User is the subset of the admin user record we read
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type listUsersResponse struct {
	Users []User `json:"users"`
}

// EnsureUser returns the ID of the user with email, creating a confirmed
// account with password if none exists. The password of an existing user
// is left unchanged.
func (c *AdminClient) EnsureUser(ctx context.Context, email, password string) (id string, created bool, err error) {
	id, err = c.FindUserIDByEmail(ctx, email)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, errUserNotFound) {
		return "", false, err
	}

	id, err = c.CreateUser(ctx, email, password)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

var errUserNotFound = errors.New("user not found")

// FindUserIDByEmail searches for a user by email and returns their ID.
func (c *AdminClient) FindUserIDByEmail(ctx context.Context, email string) (string, error) {
	var list listUsersResponse
	if err := c.client.do(ctx, http.MethodGet, "/auth/v1/admin/users", "", nil, &list); err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}

	for _, user := range list.Users {
		if user.Email == email {
			return user.ID, nil
		}
	}
	return "", errUserNotFound
}

// CreateUser creates a confirmed user and returns its UUID.
func (c *AdminClient) CreateUser(ctx context.Context, email, password string) (string, error) {
	payload := CreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"role": "portfolio_admin"},
	}

	var user User
	if err := c.client.do(ctx, http.MethodPost, "/auth/v1/admin/users", "", payload, &user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}
