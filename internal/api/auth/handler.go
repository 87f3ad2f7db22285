package auth

import (
	"net/http"
	"time"

	"collection-app/config"
	"collection-app/database"
	"collection-app/internal/apierror"
	"collection-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,max=255"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Abort(c, apierror.Bad(err))
		return
	}

	if !isPasswordStrong(input.Password) {
		apierror.Abort(c, apierror.Malformed(map[string][]string{
			"password": {"must be at least 8 characters long and contain both letters and numbers"},
		}))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	hashed := string(hashedPassword)

	user := users.User{
		Username:     input.Username,
		Email:        input.Email,
		Password:     &hashed,
		AuthProvider: "local",
	}

	if err := database.DB.Create(&user).Error; err != nil {
		apierror.Abort(c, err)
		return
	}

	token, err := issueAppJWT(user)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Abort(c, apierror.Bad(err))
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		apierror.Abort(c, apierror.Unauthorized())
		return
	}

	if user.Password == nil || *user.Password == "" {
		// Google-linked account without a local password.
		apierror.Abort(c, apierror.Unauthorized())
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		apierror.Abort(c, apierror.Unauthorized())
		return
	}

	token, err := issueAppJWT(user)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func issueAppJWT(user users.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}
