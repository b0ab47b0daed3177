package util

import (
	"time"

	"campus_lms_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID             uint           `json:"user_id"`
	Role               model.UserRole `json:"role"`
	Email              string         `json:"email"`
	Campus             string         `json:"campus"`
	CanViewAllCampuses bool           `json:"can_view_all_campuses"`
	jwt.RegisteredClaims
}

// Scope converts the token claims into the explicit capability set the
// report filters take as an argument.
func (c *Claims) Scope() model.Scope {
	return model.Scope{
		CanViewAllCampuses: c.CanViewAllCampuses || c.Role == model.SuperAdmin,
		OwnCampus:          c.Campus,
	}
}

func GenerateJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	claims := &Claims{
		UserID:             user.ID,
		Role:               user.Role,
		Email:              user.Email,
		Campus:             user.Campus,
		CanViewAllCampuses: user.CanViewAllCampuses || user.Role == model.SuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
