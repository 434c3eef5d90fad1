package submission_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tenantnotes/internal/registration/models"
	"tenantnotes/internal/registration/submission"
	"tenantnotes/internal/registration/submission/mocks"
	dErrors "tenantnotes/pkg/domain-errors"
)

//go:generate mockgen -source=api.go -destination=mocks/mocks.go -package=mocks Registrar

func completedForm() models.RegistrationForm {
	return models.RegistrationForm{
		OrganizationName: "Acme",
		Domain:           "acme.com",
		Industry:         "technology",
		CompanySize:      "11-50",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@acme.com",
		Password:         "Abc12345!",
		ConfirmPassword:  "Abc12345!",
		SubscriptionPlan: models.PlanProfessional,
		BillingCycle:     models.BillingYearly,
		TermsOfService:   true,
		PrivacyPolicy:    true,
		GDPRCompliance:   true,
		DataProcessing:   true,
	}
}

func TestMockSubmitter(t *testing.T) {
	t.Run("returns after the delay", func(t *testing.T) {
		m := submission.NewMock(10 * time.Millisecond)
		start := time.Now()
		require.NoError(t, m.Submit(context.Background(), completedForm()))
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("zero delay returns immediately", func(t *testing.T) {
		require.NoError(t, submission.NewMock(0).Submit(context.Background(), completedForm()))
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := submission.NewMock(time.Hour).Submit(ctx, completedForm())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func TestAPISubmitter(t *testing.T) {
	t.Run("posts the payload without the confirmation field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registrar := mocks.NewMockRegistrar(ctrl)
		registrar.EXPECT().RegisterTenant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, registration any) error {
				raw, err := json.Marshal(registration)
				require.NoError(t, err)
				assert.NotContains(t, string(raw), "confirmPassword")
				assert.Contains(t, string(raw), `"plan":"professional"`)
				assert.Contains(t, string(raw), `"billingCycle":"yearly"`)
				return nil
			})

		require.NoError(t, submission.NewAPI(registrar).Submit(context.Background(), completedForm()))
	})

	t.Run("propagates client errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registrar := mocks.NewMockRegistrar(ctrl)
		boom := errors.New("boom")
		registrar.EXPECT().RegisterTenant(gomock.Any(), gomock.Any()).Return(boom)

		err := submission.NewAPI(registrar).Submit(context.Background(), completedForm())
		assert.ErrorIs(t, err, boom)
	})
}

func TestAcceptedConsents(t *testing.T) {
	f := completedForm()
	assert.Equal(t, []string{"termsOfService", "privacyPolicy", "gdprCompliance", "dataProcessing"}, submission.AcceptedConsents(f))

	f.MarketingEmails = true
	assert.Contains(t, submission.AcceptedConsents(f), "marketingEmails")
}
