package biz

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/model"
	"github.com/estately/estately/internal/server/db"
	"github.com/estately/estately/internal/storage"
)

// testServices bundles every service over one in-memory database so a test
// can drive the full workflow.
type testServices struct {
	client       *gorm.DB
	policy       *authz.Policy
	users        *UserService
	auth         *AuthService
	applications *ApplicationService
	properties   *PropertyService
	favorites    *FavoriteService
	inquiries    *InquiryService
	images       *storage.ImageStore
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	client, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(client))

	policy := authz.NewPolicy(authz.Config{})

	images, err := storage.NewImageStore(storage.Config{Backend: "memory"})
	require.NoError(t, err)

	users := &UserService{
		AbstractService: &AbstractService{db: client},
		policy:          policy,
		userCache:       gocache.New(5*time.Minute, 10*time.Minute),
	}

	auth, err := NewAuthService(AuthServiceParams{
		Config:      AuthConfig{SecretKey: "test-secret", TokenTTL: time.Hour},
		UserService: users,
	})
	require.NoError(t, err)

	return &testServices{
		client: client,
		policy: policy,
		users:  users,
		auth:   auth,
		applications: &ApplicationService{
			AbstractService: &AbstractService{db: client},
			policy:          policy,
			userService:     users,
		},
		properties: &PropertyService{
			AbstractService: &AbstractService{db: client},
			policy:          policy,
			images:          images,
		},
		favorites: &FavoriteService{
			AbstractService: &AbstractService{db: client},
			policy:          policy,
		},
		inquiries: &InquiryService{
			AbstractService: &AbstractService{db: client},
			policy:          policy,
		},
		images: images,
	}
}

// createUser seeds an account with the given role, bypassing registration.
func (ts *testServices) createUser(t *testing.T, email string, role authz.Role) *model.User {
	t.Helper()

	hashed, err := HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		Email:    email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, ts.client.Create(user).Error)

	return user
}

// createProperty seeds a listing owned by the given account.
func (ts *testServices) createProperty(t *testing.T, owner *model.User, title string) *model.Property {
	t.Helper()

	property, err := ts.properties.Create(context.Background(), owner.Actor(), CreatePropertyInput{
		Title:       title,
		Description: "test listing",
		Price:       100000,
		Location:    "Dhaka",
		Bedrooms:    3,
		Bathrooms:   2,
		Space:       1200,
		Purpose:     model.PurposeSale,
	}, nil)
	require.NoError(t, err)

	return property
}
