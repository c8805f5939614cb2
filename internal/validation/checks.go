package validation

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"storefront/internal/config"
	"storefront/internal/models"
)

// AccountDirectory is the only way the engine can query account uniqueness.
// Restricting uniqueness lookups to these two directory interfaces replaces
// free-form table/column lookups: calling code can never supply identifiers.
type AccountDirectory interface {
	// AccountIDByUsername returns the id of the account owning username
	// and whether any such account exists.
	AccountIDByUsername(username string) (uint, bool, error)
}

// CustomerDirectory is the only way the engine can query email uniqueness.
type CustomerDirectory interface {
	// AccountIDByEmail returns the account id of the customer owning email
	// and whether any such customer exists.
	AccountIDByEmail(email string) (uint, bool, error)
}

// Engine checks field-level constraints for accounts, customers, products
// and reviews. All length bounds come from the injected limits and count
// characters, not bytes; the only side effects are read-only uniqueness
// lookups through the directories.
type Engine struct {
	limits    config.Limits
	accounts  AccountDirectory
	customers CustomerDirectory
}

// NewEngine creates a validation engine with the given limits and
// uniqueness directories.
func NewEngine(limits config.Limits, accounts AccountDirectory, customers CustomerDirectory) *Engine {
	return &Engine{
		limits:    limits,
		accounts:  accounts,
		customers: customers,
	}
}

// AccountCredentials is the raw account input to validate. Role arrives as
// text, the way the transport delivers it. AccountID is only meaningful when
// updating: it exempts the account's own row from the uniqueness check.
type AccountCredentials struct {
	AccountID       uint
	Username        string
	Password        string
	ConfirmPassword string
	Role            string
}

// CustomerCredentials is the raw customer-profile input to validate.
type CustomerCredentials struct {
	AccountID  uint
	FirstName  string
	LastName   string
	Email      string
	Address    string
	City       string
	PostalCode string
}

// ProductCredentials is the raw product input to validate. Image is nil
// when no upload accompanies the request.
type ProductCredentials struct {
	Name          string
	Brand         string
	Description   string
	Specification string
	Price         string
	Image         *ImageMeta
}

// ImageMeta describes an uploaded image file without touching its contents.
type ImageMeta struct {
	Filename    string
	ContentType string
	Size        int64
}

// ReviewCredentials is the raw review input to validate.
type ReviewCredentials struct {
	Rating  string
	Comment string
}

// CheckAccountCredentials runs the ordered account checks; the first
// failing check decides the message. When updating, an empty password means
// the password is unchanged and strength is not enforced.
func (e *Engine) CheckAccountCredentials(creds AccountCredentials, updating bool) (Result, error) {
	switch {
	case IsEmpty(creds.Username):
		return Fail("No username provided"), nil
	case utf8.RuneCountInString(creds.Username) > e.limits.MaxUsernameLength:
		return Fail("Username is too long"), nil
	case IsEmpty(creds.Password) && !updating:
		return Fail("No password provided!"), nil
	case IsEmpty(creds.Role) || !StringIsNumber(creds.Role) || !models.Role(parseNumber(creds.Role)).Valid():
		return Fail("Invalid role provided!"), nil
	case creds.Password != creds.ConfirmPassword:
		return Fail("Passwords didn't match!"), nil
	case !PasswordIsStrong(creds.Password) && creds.Password != "":
		return Fail("Password is too weak!"), nil
	}

	ownerID, taken, err := e.accounts.AccountIDByUsername(creds.Username)
	if err != nil {
		return Result{}, fmt.Errorf("username uniqueness lookup: %w", err)
	}
	if taken && (!updating || ownerID != creds.AccountID) {
		return Fail("Username is already taken!"), nil
	}

	return OK("Account creation possible."), nil
}

// CheckCustomerCredentials runs the ordered customer-profile checks.
func (e *Engine) CheckCustomerCredentials(creds CustomerCredentials, updating bool) (Result, error) {
	empty := ""
	switch {
	case IsEmpty(creds.FirstName):
		empty = "first name"
	case IsEmpty(creds.LastName):
		empty = "last name"
	case IsEmpty(creds.Email):
		empty = "email"
	case IsEmpty(creds.Address):
		empty = "address"
	case IsEmpty(creds.City):
		empty = "city"
	case IsEmpty(creds.PostalCode):
		empty = "postal code"
	}
	if empty != "" {
		return Fail(fmt.Sprintf("No %s provided!", empty)), nil
	}

	switch {
	case ContainsDigit(creds.FirstName) || ContainsSpecialChar(creds.FirstName):
		return Fail("First name can't contain numbers!"), nil
	case utf8.RuneCountInString(creds.FirstName) > e.limits.MaxNameLength:
		return Fail("First name is too long!"), nil
	case ContainsDigit(creds.LastName) || ContainsSpecialChar(creds.LastName):
		return Fail("Last name can't contain numbers!"), nil
	case utf8.RuneCountInString(creds.LastName) > e.limits.MaxNameLength:
		return Fail("Last name is too long!"), nil
	case !EmailIsValid(creds.Email):
		return Fail("Invalid e-mail!"), nil
	case utf8.RuneCountInString(creds.Email) > e.limits.MaxEmailLength:
		return Fail("E-mail is too long!"), nil
	}

	ownerID, inUse, err := e.customers.AccountIDByEmail(creds.Email)
	if err != nil {
		return Result{}, fmt.Errorf("email uniqueness lookup: %w", err)
	}
	if inUse && (!updating || ownerID != creds.AccountID) {
		return Fail("E-mail already in use!"), nil
	}

	switch {
	case !StringIsNumber(creds.PostalCode) || utf8.RuneCountInString(creds.PostalCode) != 5:
		return Fail("Invalid postal code!"), nil
	case ContainsSpecialChar(creds.City) || ContainsDigit(creds.City):
		return Fail("City can't contain numbers or special characters!"), nil
	case utf8.RuneCountInString(creds.City) > e.limits.MaxCityLength:
		return Fail("City is too long!"), nil
	case ContainsSpecialChar(creds.Address):
		return Fail("Address can't contain special characters!"), nil
	case utf8.RuneCountInString(creds.Address) > e.limits.MaxAddressLength:
		return Fail("Address is too long!"), nil
	}

	return OK("Customer creation possible."), nil
}

// CheckProductCredentials runs the ordered product checks. The image is
// required on create and optional on update; when present its metadata must
// pass CheckImage.
func (e *Engine) CheckProductCredentials(creds ProductCredentials, updating bool) Result {
	switch {
	case IsEmpty(creds.Name):
		return Fail("Product name cannot be empty!")
	case utf8.RuneCountInString(creds.Name) > e.limits.MaxProductNameLength:
		return Fail(fmt.Sprintf("Product name cannot be longer than %d characters!", e.limits.MaxProductNameLength))
	case IsEmpty(creds.Brand):
		return Fail("Product brand cannot be empty!")
	case utf8.RuneCountInString(creds.Brand) > e.limits.MaxProductBrandLength:
		return Fail(fmt.Sprintf("Product brand cannot be longer than %d characters!", e.limits.MaxProductBrandLength))
	case IsEmpty(creds.Description):
		return Fail("Product description cannot be empty!")
	case utf8.RuneCountInString(creds.Description) > e.limits.MaxProductDescriptionLength:
		return Fail(fmt.Sprintf("Product description cannot be longer than %d characters!", e.limits.MaxProductDescriptionLength))
	case IsEmpty(creds.Specification):
		return Fail("Product specification cannot be empty!")
	case utf8.RuneCountInString(creds.Specification) > e.limits.MaxProductSpecificationLength:
		return Fail(fmt.Sprintf("Product specification cannot be longer than %d characters!", e.limits.MaxProductSpecificationLength))
	case IsEmpty(creds.Price) || !StringIsNumber(creds.Price) || priceValue(creds.Price) < 0:
		return Fail("Product price invalid!")
	case utf8.RuneCountInString(creds.Price) > e.limits.MaxProductPriceLength:
		return Fail(fmt.Sprintf("Product price cannot be longer than %d characters!", e.limits.MaxProductPriceLength))
	}

	if creds.Image != nil {
		if res := e.CheckImage(creds.Image); !res.OK {
			return res
		}
	} else if !updating {
		return Fail("Product image cannot be empty!")
	}

	return OK("Product creation possible.")
}

// CheckImage validates uploaded image metadata: MIME type and size ceiling.
func (e *Engine) CheckImage(image *ImageMeta) Result {
	if image == nil {
		return Fail("No image provided!")
	}
	if image.ContentType != "image/jpeg" && image.ContentType != "image/png" {
		return Fail("Image type invalid!")
	}
	if float64(image.Size)/1024000 > e.limits.MaxImageSizeMB {
		return Fail("Image size is too large!")
	}
	return OK("Image is valid!")
}

// CheckReviewCredentials validates a review's rating and comment.
func (e *Engine) CheckReviewCredentials(creds ReviewCredentials) Result {
	switch {
	case creds.Rating == "" || !StringIsNumber(creds.Rating) || parseNumber(creds.Rating) < 0 || parseNumber(creds.Rating) > 5:
		return Fail("Rating invalid!")
	case IsEmpty(creds.Comment):
		return Fail("Review cannot be empty!")
	case utf8.RuneCountInString(creds.Comment) > e.limits.MaxReviewLength:
		return Fail(fmt.Sprintf("Review cannot be longer than %d characters!", e.limits.MaxReviewLength))
	}
	return OK("Review creation possible.")
}

func priceValue(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
