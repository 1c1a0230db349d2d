package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/internal/infrastructure/ratelimit"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

var (
	localPhonePattern = regexp.MustCompile(`^[6-9]\d{8}$`)
	smsCodePattern    = regexp.MustCompile(`^\d{6}$`)
)

type PhoneLoginConfig struct {
	CountryCode   string
	FlowTTL       time.Duration
	MaxAttempts   int
	SessionExpiry time.Duration
}

type PhoneLoginUseCase struct {
	loginRepo repository.PhoneLoginRepository
	userRepo  repository.UserRepository
	auth      AuthProvider
	limiter   Limiter
	cfg       PhoneLoginConfig
	now       func() time.Time
}

func NewPhoneLoginUseCase(
	loginRepo repository.PhoneLoginRepository,
	userRepo repository.UserRepository,
	auth AuthProvider,
	limiter Limiter,
	cfg PhoneLoginConfig,
) *PhoneLoginUseCase {
	return &PhoneLoginUseCase{
		loginRepo: loginRepo,
		userRepo:  userRepo,
		auth:      auth,
		limiter:   limiter,
		cfg:       cfg,
		now:       time.Now,
	}
}

type VerifyResult struct {
	UID           string           `json:"uid"`
	NextStep      entity.LoginStep `json:"next_step"`
	SessionCookie string           `json:"-"`
}

// Begin records the accepted disclaimer and opens a flow at the phone step.
func (uc *PhoneLoginUseCase) Begin(ctx context.Context, acceptTerms bool) (*entity.PhoneLogin, error) {
	if !acceptTerms {
		return nil, errors.BadRequest("Terms must be accepted", nil).WithMessageID("terms_not_accepted")
	}

	now := uc.now()
	login := &entity.PhoneLogin{
		Step:            entity.StepDisclaimer,
		AcceptedTermsAt: now,
		ExpiresAt:       now.Add(uc.cfg.FlowTTL),
	}
	if err := login.Advance(entity.StepPhone); err != nil {
		return nil, errors.Internal("Failed to start phone login", err)
	}

	if err := uc.loginRepo.Create(ctx, login); err != nil {
		return nil, err
	}

	return login, nil
}

// SubmitPhone texts a code to the number. Calling it again from the verify
// step resends the code, possibly to a corrected number.
func (uc *PhoneLoginUseCase) SubmitPhone(ctx context.Context, id, phone, recaptchaToken string) (*entity.PhoneLogin, error) {
	phone = strings.TrimSpace(phone)
	if !localPhonePattern.MatchString(phone) {
		return nil, errors.BadRequest("Invalid phone number", nil).WithMessageID("invalid_phone")
	}

	login, err := uc.loadActive(ctx, id, entity.StepPhone, entity.StepVerify)
	if err != nil {
		return nil, err
	}

	fullPhone := uc.cfg.CountryCode + phone
	if ok, retryIn := uc.limiter.Allow(fullPhone, ratelimit.ActionSendCode); !ok {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many codes sent, retry in %s", retryIn.Round(time.Second)))
	}

	sessionInfo, err := uc.auth.SendVerificationCode(ctx, fullPhone, recaptchaToken)
	if err != nil {
		logger.Warn("sms send failed for flow %s: %v", login.ID, err)
		return nil, errors.BadRequest("Could not send verification code", err).WithMessageID("sms_send_failed")
	}

	login.PhoneNumber = fullPhone
	login.SessionInfo = sessionInfo
	login.Attempts = 0
	if login.Step == entity.StepPhone {
		if err := login.Advance(entity.StepVerify); err != nil {
			return nil, errors.Internal("Failed to update phone login", err)
		}
	}

	if err := uc.loginRepo.Update(ctx, login); err != nil {
		return nil, err
	}

	return login, nil
}

// SubmitCode checks the SMS code and, on success, mints the session cookie.
func (uc *PhoneLoginUseCase) SubmitCode(ctx context.Context, id, code string) (*VerifyResult, error) {
	if !smsCodePattern.MatchString(code) {
		return nil, errors.BadRequest("The code must have 6 digits", nil).WithMessageID("invalid_code_length")
	}

	login, err := uc.loadActive(ctx, id, entity.StepVerify)
	if err != nil {
		return nil, err
	}

	if login.Attempts >= uc.cfg.MaxAttempts {
		return nil, errors.TooManyRequests("Too many wrong codes, request a new one")
	}

	cred, err := uc.auth.VerifyPhoneCode(ctx, login.SessionInfo, code)
	if err != nil {
		login.Attempts++
		if updateErr := uc.loginRepo.Update(ctx, login); updateErr != nil {
			return nil, updateErr
		}
		return nil, errors.Unauthorized("Wrong code", err).WithMessageID("wrong_code")
	}

	cookie, err := uc.auth.CreateSessionCookie(ctx, cred.IDToken, uc.cfg.SessionExpiry)
	if err != nil {
		return nil, errors.Internal("Failed to create session", err).WithMessageID("session_failed")
	}

	profile, err := uc.userRepo.GetByID(ctx, cred.UID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	next := entity.StepComplete
	if !profile.HasDisplayName() {
		next = entity.StepProfile
	}
	if err := login.Advance(next); err != nil {
		return nil, errors.Internal("Failed to update phone login", err)
	}

	login.UID = cred.UID
	login.SessionInfo = ""
	if cred.PhoneNumber != "" {
		login.PhoneNumber = cred.PhoneNumber
	}
	if err := uc.loginRepo.Update(ctx, login); err != nil {
		return nil, err
	}

	logger.Info("phone login %s verified for %s (new user: %t)", login.ID, cred.UID, cred.IsNewUser)

	return &VerifyResult{
		UID:           cred.UID,
		NextStep:      next,
		SessionCookie: cookie,
	}, nil
}

// CompleteProfile saves the display name for the user who verified the flow.
func (uc *PhoneLoginUseCase) CompleteProfile(ctx context.Context, id, uid, displayName string) (*entity.UserProfile, error) {
	login, err := uc.loadActive(ctx, id, entity.StepProfile)
	if err != nil {
		return nil, err
	}
	if login.UID != uid {
		return nil, errors.Forbidden("This login flow belongs to another user", nil)
	}

	displayName = strings.TrimSpace(displayName)
	if len([]rune(displayName)) < entity.MinDisplayNameLength {
		return nil, errors.BadRequest("Please enter your full name", nil).WithMessageID("name_too_short")
	}

	profile := &entity.UserProfile{
		ID:          uid,
		DisplayName: displayName,
		PhoneNumber: login.PhoneNumber,
	}
	if err := uc.userRepo.Upsert(ctx, profile); err != nil {
		return nil, errors.Internal("Failed to save profile", err).WithMessageID("profile_save_failed")
	}

	if err := login.Advance(entity.StepComplete); err != nil {
		return nil, errors.Internal("Failed to update phone login", err)
	}
	if err := uc.loginRepo.Update(ctx, login); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, uid)
}

// loadActive fetches a flow that has not expired and sits at one of steps.
func (uc *PhoneLoginUseCase) loadActive(ctx context.Context, id string, steps ...entity.LoginStep) (*entity.PhoneLogin, error) {
	noActive := errors.BadRequest("No active verification", nil).WithMessageID("no_active_verification")

	login, err := uc.loginRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, noActive
		}
		return nil, err
	}

	if login.Expired(uc.now()) {
		return nil, noActive
	}

	for _, step := range steps {
		if login.Step == step {
			return login, nil
		}
	}
	return nil, noActive
}
