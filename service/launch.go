package service

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/bankr"
	"github.com/bankrclub/registrar/registry"
)

// Only logos already pinned through our own gateway are trusted as-is.
const pinataGatewayPrefix = "https://gateway.pinata.cloud/ipfs/"

// resolveLogo prefers a provenance-checked user upload and falls back to the
// gate NFT's own artwork. Returning "" is fine, the launch proceeds bare.
func (s *ClaimService) resolveLogo(logoURL string, tokenId *int64) string {
	if strings.HasPrefix(logoURL, pinataGatewayPrefix) {
		return logoURL
	}
	if tokenId != nil {
		return s.metadata.TokenImage(*tokenId)
	}
	return ""
}

// launchToken runs after the registration committed, so every failure here is
// a partial success reported through TokenLaunchInfo.Error.
func (s *ClaimService) launchToken(req *ClaimRequest, name string, fullName string, address string, tokenId *int64) *TokenLaunchInfo {
	feeRecipient := bankr.FeeRecipient{Type: "wallet", Value: address}
	if req.FeeRecipientType != "wallet" {
		feeRecipient = bankr.FeeRecipient{
			Type:  req.FeeRecipientType,
			Value: req.FeeRecipientValue,
		}
	}

	result, err := s.launcher.Launch(bankr.LaunchParams{
		Name:         name,
		FullName:     fullName,
		FeeRecipient: feeRecipient,
		TweetURL:     req.TweetURL,
		ImageURL:     s.resolveLogo(req.LogoURL, tokenId),
	})
	if err != nil {
		var launchErr *bankr.LaunchError
		if !errors.As(err, &launchErr) {
			launchErr = &bankr.LaunchError{Code: bankr.LaunchUnknown, Err: err}
		}
		log.WithError(err).WithField("name", name).Warn("[LAUNCH] token launch failed")
		return &TokenLaunchInfo{
			Error:   launchErr.Code,
			Message: launchErr.Message(),
		}
	}

	go func() {
		if err := s.store.UpdateTokenInfo(name, registry.TokenInfo{
			TokenAddress: result.TokenAddress,
			TokenSymbol:  result.TokenSymbol,
			PoolId:       result.PoolId,
			TxHash:       result.TxHash,
		}); err != nil {
			log.WithError(err).WithField("name", name).Warn("[LAUNCH] error attaching token info")
		}
	}()

	return &TokenLaunchInfo{
		Address: result.TokenAddress,
		Symbol:  result.TokenSymbol,
		PoolId:  result.PoolId,
		TxHash:  result.TxHash,
	}
}
