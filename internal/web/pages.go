package web

import (
	"portfolio/internal/display"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/service/admin"
)

// IndexPage is the public landing page
type IndexPage struct {
	Base
	Tree       display.Tree
	Categories []models.ContactCategory
}

// DetailPage shows one sub-item
type DetailPage struct {
	Base
	Detail display.Detail
}

// LoginPage is the sign-in form
type LoginPage struct {
	Base
	Email string
	Error string
}

// AdminPage is the dashboard
type AdminPage struct {
	Base
	State admin.State
}
