package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "account/internal/delivery/context"
	"account/internal/delivery/http/middleware"
	httpvalidator "account/internal/delivery/http/validator"
	domainerrors "account/internal/domain/errors"
	"account/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfileUsecase struct {
	getProfileFn    func(ctx context.Context, userID uuid.UUID) (*usecase.ProfileView, error)
	updateProfileFn func(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileView, error)
}

func (s *stubProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileView, error) {
	return s.getProfileFn(ctx, userID)
}

func (s *stubProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileView, error) {
	return s.updateProfileFn(ctx, userID, input)
}

type stubCredentialUsecase struct {
	changePasswordFn func(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error
}

func (s *stubCredentialUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, userID, input)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	return newTestContextWithValidator(t, method, target, body, httpvalidator.New())
}

func newTestContextWithValidator(t *testing.T, method, target, body string, v echo.Validator) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = v
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestHandler(profileUC usecase.ProfileUsecase, credentialUC usecase.CredentialUsecase) *AccountHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAccountHandler(profileUC, credentialUC, logger)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func testView(userID uuid.UUID) *usecase.ProfileView {
	now := time.Now()

	return &usecase.ProfileView{
		ID:        userID,
		Email:     "jane@example.com",
		Name:      "Jane Doe",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      "user",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountHandler_GetProfile(t *testing.T) {
	t.Run("returns the profile envelope", func(t *testing.T) {
		userID := uuid.New()
		h := newTestHandler(&stubProfileUsecase{
			getProfileFn: func(_ context.Context, id uuid.UUID) (*usecase.ProfileView, error) {
				assert.Equal(t, userID, id)

				return testView(userID), nil
			},
		}, nil)

		c, rec := newTestContext(t, http.MethodGet, "/users/profile", "")
		c.Set(deliverycontext.KeyUserID, userID)

		require.NoError(t, h.GetProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, true, envelope["success"])
		data, ok := envelope["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "jane@example.com", data["email"])
		assert.Equal(t, "Jane", data["firstName"])
		assert.NotContains(t, rec.Body.String(), "passwordHash")
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		h := newTestHandler(&stubProfileUsecase{}, nil)

		c, rec := newTestContext(t, http.MethodGet, "/users/profile", "")

		require.NoError(t, h.GetProfile(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAccountHandler_UpdateProfile(t *testing.T) {
	t.Run("binds the body and returns the updated view", func(t *testing.T) {
		userID := uuid.New()
		h := newTestHandler(&stubProfileUsecase{
			updateProfileFn: func(_ context.Context, id uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileView, error) {
				assert.Equal(t, userID, id)
				assert.Equal(t, "Janet", input.FirstName)
				assert.Equal(t, "Doe", input.LastName)
				assert.Equal(t, "janet@example.com", input.Email)

				view := testView(userID)
				view.Name = "Janet Doe"
				view.FirstName = "Janet"
				view.Email = "janet@example.com"

				return view, nil
			},
		}, nil)

		body := `{"firstName":"Janet","lastName":"Doe","email":"janet@example.com"}`
		c, rec := newTestContext(t, http.MethodPut, "/users/profile", body)
		c.Set(deliverycontext.KeyUserID, userID)

		require.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		data, ok := envelope["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Janet Doe", data["name"])
	})

	t.Run("conflict error maps to 409 through the error handler", func(t *testing.T) {
		userID := uuid.New()
		h := newTestHandler(&stubProfileUsecase{
			updateProfileFn: func(_ context.Context, _ uuid.UUID, _ *usecase.UpdateProfileInput) (*usecase.ProfileView, error) {
				return nil, errors.Wrap(domainerrors.ErrEmailTaken, "profile update rejected")
			},
		}, nil)

		body := `{"firstName":"Janet","lastName":"Doe","email":"taken@example.com"}`
		c, rec := newTestContext(t, http.MethodPut, "/users/profile", body)
		c.Set(deliverycontext.KeyUserID, userID)

		err := h.UpdateProfile(c)
		require.Error(t, err)

		errMW := middleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
		errMW.HandleHTTPError(err, c)

		assert.Equal(t, http.StatusConflict, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, false, envelope["success"])
	})
}

// recordingValidator captures every value the handlers submit for
// struct-tag validation.
type recordingValidator struct {
	inputs []any
}

func (v *recordingValidator) Validate(i any) error {
	v.inputs = append(v.inputs, i)

	return nil
}

// rejectingValidator fails every payload, standing in for a struct-tag
// violation.
type rejectingValidator struct{}

func (rejectingValidator) Validate(any) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}

func TestAccountHandler_ValidatesBoundInput(t *testing.T) {
	t.Run("update profile runs the registered validator", func(t *testing.T) {
		userID := uuid.New()
		h := newTestHandler(&stubProfileUsecase{
			updateProfileFn: func(_ context.Context, id uuid.UUID, _ *usecase.UpdateProfileInput) (*usecase.ProfileView, error) {
				return testView(id), nil
			},
		}, nil)

		v := &recordingValidator{}
		body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com"}`
		c, _ := newTestContextWithValidator(t, http.MethodPut, "/users/profile", body, v)
		c.Set(deliverycontext.KeyUserID, userID)

		require.NoError(t, h.UpdateProfile(c))
		require.Len(t, v.inputs, 1)
		_, ok := v.inputs[0].(*usecase.UpdateProfileInput)
		assert.True(t, ok)
	})

	t.Run("change password runs the registered validator", func(t *testing.T) {
		userID := uuid.New()
		h := newTestHandler(nil, &stubCredentialUsecase{
			changePasswordFn: func(_ context.Context, _ uuid.UUID, _ *usecase.ChangePasswordInput) error {
				return nil
			},
		})

		v := &recordingValidator{}
		body := `{"currentPassword":"oldpass123","newPassword":"newpass456"}`
		c, _ := newTestContextWithValidator(t, http.MethodPut, "/users/password", body, v)
		c.Set(deliverycontext.KeyUserID, userID)

		require.NoError(t, h.ChangePassword(c))
		require.Len(t, v.inputs, 1)
		_, ok := v.inputs[0].(*usecase.ChangePasswordInput)
		assert.True(t, ok)
	})

	t.Run("a validator rejection stops the request before the usecase", func(t *testing.T) {
		userID := uuid.New()
		h := newTestHandler(&stubProfileUsecase{
			updateProfileFn: func(_ context.Context, _ uuid.UUID, _ *usecase.UpdateProfileInput) (*usecase.ProfileView, error) {
				t.Fatal("usecase must not run when validation fails")

				return nil, nil
			},
		}, nil)

		body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com"}`
		c, rec := newTestContextWithValidator(t, http.MethodPut, "/users/profile", body, rejectingValidator{})
		c.Set(deliverycontext.KeyUserID, userID)

		err := h.UpdateProfile(c)
		require.Error(t, err)

		errMW := middleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
		errMW.HandleHTTPError(err, c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAccountHandler_ChangePassword(t *testing.T) {
	t.Run("success never echoes the passwords", func(t *testing.T) {
		userID := uuid.New()
		h := newTestHandler(nil, &stubCredentialUsecase{
			changePasswordFn: func(_ context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error {
				assert.Equal(t, userID, id)
				assert.Equal(t, "oldpass123", input.CurrentPassword)
				assert.Equal(t, "newpass456", input.NewPassword)

				return nil
			},
		})

		body := `{"currentPassword":"oldpass123","newPassword":"newpass456"}`
		c, rec := newTestContext(t, http.MethodPut, "/users/password", body)
		c.Set(deliverycontext.KeyUserID, userID)

		require.NoError(t, h.ChangePassword(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "oldpass123")
		assert.NotContains(t, rec.Body.String(), "newpass456")
	})

	t.Run("validation errors keep their status and code", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{
				name:       "short password",
				err:        errors.Wrap(domainerrors.ErrPasswordTooShort, "password change rejected"),
				wantStatus: http.StatusBadRequest,
				wantCode:   "PASSWORD_TOO_SHORT",
			},
			{
				name:       "wrong current password",
				err:        errors.Wrap(domainerrors.ErrCurrentPasswordIncorrect, "password change rejected"),
				wantStatus: http.StatusBadRequest,
				wantCode:   "CURRENT_PASSWORD_INCORRECT",
			},
			{
				name:       "record vanished",
				err:        errors.Wrap(domainerrors.ErrInternalError, "password update affected no rows"),
				wantStatus: http.StatusInternalServerError,
				wantCode:   "INTERNAL_ERROR",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				userID := uuid.New()
				h := newTestHandler(nil, &stubCredentialUsecase{
					changePasswordFn: func(_ context.Context, _ uuid.UUID, _ *usecase.ChangePasswordInput) error {
						return tt.err
					},
				})

				body := `{"currentPassword":"oldpass123","newPassword":"newpass456"}`
				c, rec := newTestContext(t, http.MethodPut, "/users/password", body)
				c.Set(deliverycontext.KeyUserID, userID)

				err := h.ChangePassword(c)
				require.Error(t, err)

				errMW := middleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
				errMW.HandleHTTPError(err, c)

				assert.Equal(t, tt.wantStatus, rec.Code)
				envelope := decodeEnvelope(t, rec)
				errInfo, ok := envelope["error"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, errInfo["code"])
			})
		}
	})
}
