package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wordbridge/core/internal/models"
	jwtpkg "github.com/wordbridge/core/internal/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users    *mongo.Collection
	tokenTTL time.Duration
}

func NewService(users *mongo.Collection, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 30 * 24 * time.Hour
	}
	return &Service{users: users, tokenTTL: tokenTTL}
}

// Signup creates an account and returns a signed token for it.
func (s *Service) Signup(ctx context.Context, dto *SignupDTO) (string, *models.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u := &models.UserModel{
		Name:      strings.TrimSpace(dto.Name),
		Email:     strings.ToLower(strings.TrimSpace(dto.Email)),
		Password:  string(hash),
		Role:      models.RoleUser,
		Active:    true,
		CreatedAt: time.Now(),
	}
	res, err := s.users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", nil, errEmailTaken
		}
		return "", nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}

	token, err := jwtpkg.Sign(u.ID.Hex(), u.Role, s.tokenTTL)
	return token, u, err
}

// Login verifies credentials and returns a signed token. A deliberate
// delay on failure slows down brute forcing.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.users.FindOne(ctx, bson.M{
		"email":  strings.ToLower(strings.TrimSpace(dto.Email)),
		"active": true,
	}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		time.Sleep(3 * time.Second)
		return "", nil, errWrongCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", nil, errWrongCredentials
	}

	token, err := jwtpkg.Sign(u.ID.Hex(), u.Role, s.tokenTTL)
	return token, &u, err
}

// GetUser fetches one active user by hex id.
func (s *Service) GetUser(ctx context.Context, userID string) (*models.UserModel, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	var u models.UserModel
	err = s.users.FindOne(ctx, bson.M{"_id": oid, "active": true}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
