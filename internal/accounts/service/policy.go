package service

import (
	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
)

// SignupFieldMask lists the registration fields that will be honoured.
type SignupFieldMask uint8

const (
	FieldEmail SignupFieldMask = 1 << iota
	FieldDisplayName
	FieldSecret
	FieldAdmin
)

func (m SignupFieldMask) Has(f SignupFieldMask) bool { return m&f == f }

// Apply clears every registration field the mask does not permit.
func (m SignupFieldMask) Apply(r domain.Registration) domain.Registration {
	if !m.Has(FieldEmail) {
		r.Email = ""
	}
	if !m.Has(FieldDisplayName) {
		r.DisplayName = ""
	}
	if !m.Has(FieldSecret) {
		r.Secret = ""
	}
	if !m.Has(FieldAdmin) {
		r.RequestedAdmin = false
	}
	return r
}

// AccountPolicy holds the signup and enable/disable rules. Apart from the
// flag readers its methods are pure; counts are supplied by the caller.
type AccountPolicy struct {
	Flags settings.Flags
}

func (p AccountPolicy) ComputeSignupFieldMask(adminCount int) SignupFieldMask {
	mask := FieldEmail | FieldDisplayName | FieldSecret
	if p.IsEligibleForAdminBootstrap(adminCount) {
		mask |= FieldAdmin
	}
	return mask
}

func (p AccountPolicy) IsEligibleForAdminBootstrap(adminCount int) bool {
	return adminCount == 0
}

func (p AccountPolicy) AdminBootstrapFeatureEnabled() bool {
	return p.Flags.Enabled(settings.FeatureFirstUserAdmin)
}

func (p AccountPolicy) SignupEnabled() bool {
	return p.Flags.Enabled(settings.FeatureSignup)
}

func (p AccountPolicy) LastAdminDisableAllowed() bool {
	return p.Flags.Enabled(settings.FeatureLastAdminDisable)
}

// CheckDisable decides whether target may move to the disabled state, given
// the number of enabled admins (target included).
func (p AccountPolicy) CheckDisable(target domain.Account, enabledAdmins int) error {
	if target.System {
		return fieldError(ErrForbidden, BaseField, "the system account cannot be enabled or disabled")
	}
	if !target.Enabled || !target.Admin {
		return nil
	}
	if enabledAdmins <= 1 && !p.LastAdminDisableAllowed() {
		return fieldError(ErrForbidden, BaseField, "cannot disable the last enabled admin")
	}
	return nil
}

// CheckEnable decides whether target may move to the enabled state.
func (p AccountPolicy) CheckEnable(target domain.Account) error {
	if target.System {
		return fieldError(ErrForbidden, BaseField, "the system account cannot be enabled or disabled")
	}
	return nil
}
