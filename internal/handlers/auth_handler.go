package handlers

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"lojagames/internal/models"
	"lojagames/internal/repositories"
	"lojagames/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for registration, login and lookups.
type AuthHandler struct {
	authService    *services.AuthService
	productService *services.ProductService
	validate       *validator.Validate
	uploadDir      string
}

// NewAuthHandler creates a new AuthHandler. uploadDir is where avatar
// images from the registration form are stored.
func NewAuthHandler(authService *services.AuthService, productService *services.ProductService, uploadDir string) *AuthHandler {
	v := validator.New()
	// Report errors under the wire field name, not the Go struct field.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &AuthHandler{
		authService:    authService,
		productService: productService,
		validate:       v,
		uploadDir:      uploadDir,
	}
}

// RegisterRoutes registers the auth routes. requireAuth guards the user
// lookup endpoint; product lookup stays public for the store page.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/registro", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/user/:id", requireAuth, h.HandleGetUser)
	authRoutes.Get("/product/:id", h.HandleGetProduct)
}

// RegisterRequest is the multipart registration form.
type RegisterRequest struct {
	UserName  string `form:"userName" json:"userName" validate:"required"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Password  string `form:"password" json:"password" validate:"required,min=6"`
	BirthDate string `form:"dataNascimento" json:"dataNascimento" validate:"required,datetime=2006-01-02"`
	Phone     string `form:"telefone" json:"telefone" validate:"required,e164"`
}

// fieldMessages are the per-field validation messages of the registration
// contract. Any rule not listed falls back to a generic message.
var fieldMessages = map[string]string{
	"userName":       "Nome de usuário é obrigatório",
	"email":          "Email inválido",
	"password":       "Senha deve ter no mínimo 6 caracteres",
	"dataNascimento": "Data de nascimento inválida (formato AAAA-MM-DD)",
	"telefone":       "Número de telefone inválido",
}

// validationErrorList shapes validator errors into the full list of violated
// rules, one {field, message} pair per failure.
func validationErrorList(errs validator.ValidationErrors) []fiber.Map {
	out := make([]fiber.Map, 0, len(errs))
	for _, fe := range errs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Campo inválido"
		}
		out = append(out, fiber.Map{"field": fe.Field(), "message": msg})
	}
	return out
}

// HandleRegister handles new user registration from the multipart form.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.WithError(err).Debug("failed to parse registration body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": validationErrorList(verrs),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	// Optional avatar image. Stored under the upload dir with a fresh name;
	// a missing file is not an error.
	var avatarURL string
	if file, err := c.FormFile("imagem"); err == nil && file != nil {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		dest := filepath.Join(h.uploadDir, name)
		if err := c.SaveFile(file, dest); err != nil {
			logrus.WithError(err).Error("failed to save avatar image")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro ao criar usuário",
			})
		}
		avatarURL = dest
	}

	user := &models.User{
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: req.BirthDate,
		Phone:     req.Phone,
		AvatarURL: avatarURL,
	}
	if err := h.authService.Register(user); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email já cadastrado",
			})
		case errors.Is(err, services.ErrUserNameTaken),
			errors.Is(err, repositories.ErrDuplicateUser):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Nome de usuário já cadastrado",
			})
		default:
			logrus.WithError(err).WithField("userName", req.UserName).Error("failed to register user")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro ao criar usuário",
			})
		}
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Usuário criado com sucesso",
		"user":    user,
	})
}

// LoginRequest is the JSON login body.
type LoginRequest struct {
	UserName   string `json:"userName" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// HandleLogin authenticates a user and issues a JWT. With rememberMe the
// token is also set as an HTTP-only cookie whose max age equals the token's
// own (extended) validity.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.WithError(err).Debug("failed to parse login body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Usuário e senha são obrigatórios",
		})
	}

	token, err := h.authService.Login(req.UserName, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Usuário não encontrado",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Senha inválida",
			})
		default:
			logrus.WithError(err).WithField("userName", req.UserName).Error("login failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro ao fazer login",
			})
		}
	}

	if req.RememberMe {
		ttl := h.authService.TokenTTL(true)
		c.Cookie(&fiber.Cookie{
			Name:     "jwt",
			Value:    token,
			HTTPOnly: true,
			MaxAge:   int(ttl.Seconds()),
			Expires:  time.Now().Add(ttl),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login bem-sucedido",
		"token":   token,
	})
}

// HandleGetUser returns a user record by username. The caller must be
// authenticated as that same user; the record is not public.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	userName := c.Params("id")

	caller, _ := c.Locals("userName").(string)
	if caller != userName {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Acesso negado",
		})
	}

	user, err := h.authService.GetUserByUserName(userName)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Usuário não encontrado",
			})
		}
		logrus.WithError(err).WithField("userName", userName).Error("failed to fetch user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar usuário",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// HandleGetProduct returns a product record by ID. Public: the store page
// fetches it before the visitor logs in.
func (h *AuthHandler) HandleGetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	product, err := h.productService.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Produto não encontrado",
			})
		}
		logrus.WithError(err).WithField("productID", productID).Error("failed to fetch product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar produto",
		})
	}

	return c.JSON(product)
}
