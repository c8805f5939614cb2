package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"
	"storefront/pkg/logging"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

var logger = logging.New(os.Stdout)

// IdentityService handles account and customer lifecycles: registration,
// authentication, credential updates and deletion.
type IdentityService struct {
	accounts      repositories.AccountRepository
	customers     repositories.CustomerRepository
	engine        *validation.Engine
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(accounts repositories.AccountRepository, customers repositories.CustomerRepository, engine *validation.Engine, jwtSecret string) *IdentityService {
	return &IdentityService{
		accounts:      accounts,
		customers:     customers,
		engine:        engine,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// RegisterInput carries the raw registration form. Role arrives as text and
// is validated before conversion.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Role            string
	FirstName       string
	LastName        string
	Email           string
	Address         string
	City            string
	PostalCode      string
}

// Identity is what a successful authentication yields.
type Identity struct {
	AccountID uint        `json:"id"`
	Role      models.Role `json:"role"`
}

// UserDirectory partitions all users into admins and customers.
type UserDirectory struct {
	Admins    []models.Account  `json:"admins"`
	Customers []models.Customer `json:"customers"`
}

// RegisterUser validates the account fields and, for non-admin roles, the
// customer fields, then inserts the account and the linked customer profile
// in a single transaction. Validation failures come back as a failed Result;
// only store faults are errors.
func (s *IdentityService) RegisterUser(input RegisterInput) (validation.Result, error) {
	res, err := s.engine.CheckAccountCredentials(validation.AccountCredentials{
		Username:        input.Username,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		Role:            input.Role,
	}, false)
	if err != nil {
		return validation.Result{}, err
	}
	if !res.OK {
		return res, nil
	}

	role := parseRole(input.Role)

	if role != models.RoleAdmin {
		res, err = s.engine.CheckCustomerCredentials(validation.CustomerCredentials{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Email:      input.Email,
			Address:    input.Address,
			City:       input.City,
			PostalCode: input.PostalCode,
		}, false)
		if err != nil {
			return validation.Result{}, err
		}
		if !res.OK {
			return res, nil
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if role == models.RoleAdmin {
		err = s.accounts.Create(account)
	} else {
		err = s.accounts.CreateWithCustomer(account, &models.Customer{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Email:      input.Email,
			Address:    input.Address,
			City:       input.City,
			PostalCode: input.PostalCode,
		})
	}
	if err != nil {
		logger.Error().Err(err).Str("username", input.Username).Msg("failed to register user")
		return validation.Result{}, err
	}

	return validation.OK("User successfully created!"), nil
}

// Authenticate looks up the account by username and compares the password
// against the stored hash. The two failure modes stay distinguishable so the
// caller can report them verbatim.
func (s *IdentityService) Authenticate(username, password string) (*Identity, validation.Result, error) {
	account, err := s.accounts.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, validation.Fail("Username doesn't exist!"), nil
		}
		return nil, validation.Result{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, validation.Fail("Wrong Password!"), nil
	}

	return &Identity{AccountID: account.ID, Role: account.Role}, validation.OK("User successfully authenticated!"), nil
}

// IssueToken signs a JWT carrying the account id and role.
func (s *IdentityService) IssueToken(identity *Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": identity.AccountID,
		"role":       int(identity.Role),
		"exp":        time.Now().Add(s.tokenDuration).Unix(),
		"iat":        time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *IdentityService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// UpdateUser re-validates with the account's own rows exempt from the
// uniqueness checks, then updates the account and, for customers, the
// profile. The password is re-hashed only when a new one was supplied.
func (s *IdentityService) UpdateUser(accountID uint, input RegisterInput) (validation.Result, error) {
	res, err := s.engine.CheckAccountCredentials(validation.AccountCredentials{
		AccountID:       accountID,
		Username:        input.Username,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		Role:            input.Role,
	}, true)
	if err != nil {
		return validation.Result{}, err
	}
	if !res.OK {
		return res, nil
	}

	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validation.Fail("User doesn't exist!"), nil
		}
		return validation.Result{}, err
	}

	role := parseRole(input.Role)
	account.Username = input.Username
	account.Role = role
	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return validation.Result{}, fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = string(hashedPassword)
	}
	if err := s.accounts.Update(account); err != nil {
		return validation.Result{}, err
	}

	if role != models.RoleAdmin {
		res, err = s.engine.CheckCustomerCredentials(validation.CustomerCredentials{
			AccountID:  accountID,
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Email:      input.Email,
			Address:    input.Address,
			City:       input.City,
			PostalCode: input.PostalCode,
		}, true)
		if err != nil {
			return validation.Result{}, err
		}
		if !res.OK {
			return res, nil
		}

		customer, err := s.customers.GetByAccountID(accountID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return validation.Fail("User doesn't exist!"), nil
			}
			return validation.Result{}, err
		}
		customer.FirstName = input.FirstName
		customer.LastName = input.LastName
		customer.Email = input.Email
		customer.Address = input.Address
		customer.City = input.City
		customer.PostalCode = input.PostalCode
		if err := s.customers.Update(customer); err != nil {
			return validation.Result{}, err
		}
	}

	return validation.OK("User successfully updated!"), nil
}

// DeleteUser removes the account and, for customers, cascades over the
// dependent reviews, likes, cart entries and customer profile.
func (s *IdentityService) DeleteUser(accountID uint) (validation.Result, error) {
	if err := s.accounts.DeleteCascade(accountID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validation.Fail("User doesn't exist!"), nil
		}
		return validation.Result{}, err
	}
	return validation.OK("User successfully deleted!"), nil
}

// GetAccount retrieves an account by id.
func (s *IdentityService) GetAccount(accountID uint) (*models.Account, error) {
	return s.accounts.GetByID(accountID)
}

// GetCustomer retrieves the customer profile attached to an account.
func (s *IdentityService) GetCustomer(accountID uint) (*models.Customer, error) {
	return s.customers.GetByAccountID(accountID)
}

// GetCustomerByID retrieves a customer by its own id.
func (s *IdentityService) GetCustomerByID(customerID uint) (*models.Customer, error) {
	return s.customers.GetByID(customerID)
}

// GetUsers returns all users, partitioned into admins and customers.
func (s *IdentityService) GetUsers() (*UserDirectory, error) {
	admins, err := s.accounts.GetAdmins()
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.GetAllWithAccounts()
	if err != nil {
		return nil, err
	}
	return &UserDirectory{Admins: admins, Customers: customers}, nil
}

// GetUserRole returns the role of an account.
func (s *IdentityService) GetUserRole(accountID uint) (models.Role, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return 0, err
	}
	return account.Role, nil
}

// parseRole converts a validated numeric role string, truncating any
// fractional part the way the numeric gate allows it.
func parseRole(s string) models.Role {
	if i, err := strconv.Atoi(s); err == nil {
		return models.Role(i)
	}
	f, _ := strconv.ParseFloat(s, 64)
	return models.Role(int(f))
}
