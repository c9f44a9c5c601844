package adapthttp

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"inventoried/internal/domain"
)

// newValidator builds the request validator with the domain's enum and
// email rules registered, reporting violations under json field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.ValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.ValidRole(fl.Field().String())
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return domain.ValidEmail(fl.Field().String())
	})
	return v
}

// createItemRequest is the POST /items payload. Price and Stock are
// pointers so a literal zero is distinguishable from a missing field.
type createItemRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"required,min=5,max=500"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,category"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
}

func (req *createItemRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
}

func (req *createItemRequest) toDomain() domain.Item {
	return domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Stock:       *req.Stock,
	}
}

// updateItemRequest is the PUT /items/{id} payload; every field is
// optional and only supplied fields are written.
type updateItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description" validate:"omitempty,min=5,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,category"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

func (req *updateItemRequest) normalize() {
	trim(req.Name)
	trim(req.Description)
	trim(req.Category)
}

func (req *updateItemRequest) toPatch() domain.ItemPatch {
	return domain.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	}
}

// createUserRequest is the POST /users payload. Role defaults to "user"
// when omitted.
type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,emailshape"`
	Role     string `json:"role" validate:"omitempty,role"`
}

func (req *createUserRequest) normalize() {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
}

func (req *createUserRequest) toDomain() domain.User {
	return domain.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
}

// updateUserRequest is the PUT /users/{id} payload.
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	Email    *string `json:"email" validate:"omitempty,emailshape"`
	Role     *string `json:"role" validate:"omitempty,role"`
}

func (req *updateUserRequest) normalize() {
	trim(req.Username)
	trim(req.Email)
}

func (req *updateUserRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

type normalizable interface {
	normalize()
}

// decodeValid decodes the body into dst and runs every field rule,
// answering 400 with the full violation list itself when the request is
// bad. The handler proceeds only on true.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := parseJSON(r, dst); err != nil {
		respondValidation(w, domain.FieldErrors{{Field: "body", Message: "Request body must be valid JSON"}})
		return false
	}
	if n, ok := dst.(normalizable); ok {
		n.normalize()
	}
	if err := s.validate.Struct(dst); err != nil {
		var details domain.FieldErrors
		for _, fe := range err.(validator.ValidationErrors) {
			details = details.Add(fe.Field(), detailMessage(fe))
		}
		respondValidation(w, details)
		return false
	}
	return true
}

// idParam extracts and syntax-checks the id path parameter. Malformed
// ids are rejected here, before any store access.
func idParam(w http.ResponseWriter, r *http.Request, kind string) (string, bool) {
	id := chi.URLParam(r, "id")
	if !domain.IsValidID(id) {
		respondValidation(w, domain.FieldErrors{{Field: "id", Message: "Invalid " + kind + " ID"}})
		return "", false
	}
	return id, true
}

// detailMessage renders a rule violation the way the API documents it.
func detailMessage(fe validator.FieldError) string {
	required := fe.Tag() == "required"
	switch fe.Field() {
	case "name":
		if required {
			return "Name is required"
		}
		return "Name must be between 2 and 100 characters"
	case "description":
		if required {
			return "Description is required"
		}
		return "Description must be between 5 and 500 characters"
	case "price":
		if required {
			return "Price is required"
		}
		return "Price must be a positive number"
	case "category":
		if required {
			return "Category is required"
		}
		return "Category must be one of: " + strings.Join(domain.Categories, ", ")
	case "stock":
		if required {
			return "Stock is required"
		}
		return "Stock must be a non-negative integer"
	case "username":
		if required {
			return "Username is required"
		}
		return "Username must be between 3 and 30 characters"
	case "email":
		if required {
			return "Email is required"
		}
		return "Please enter a valid email"
	case "role":
		return "Role must be one of: " + strings.Join(domain.Roles, ", ")
	default:
		return fe.Field() + " is invalid"
	}
}
