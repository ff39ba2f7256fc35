package http

import (
	"errors"
	"net/http"
	"time"

	"signet/internal/domain"
	"signet/internal/usecase"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createIdentityRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createIdentityResponse struct {
	IdentityID int64  `json:"identity_id"`
	Username   string `json:"username"`
}

type signRequest struct {
	IdentityID int64  `json:"identity_id"`
	Text       string `json:"text"`
}

type signResponse struct {
	SignatureID string `json:"signature_id"`
	Algorithm   string `json:"algorithm"`
	CreatedAt   string `json:"created_at"`
}

type verificationResponse struct {
	Status            string `json:"status"`
	SignatoryUsername string `json:"signatory_username,omitempty"`
	Algorithm         string `json:"algorithm,omitempty"`
	SignedAt          string `json:"signed_at,omitempty"`
}

type listSignaturesRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signatureSummaryResponse struct {
	SignatureID string `json:"signature_id"`
	TextPrefix  string `json:"text_prefix"`
	CreatedAt   string `json:"created_at"`
}

func (s *Server) handleCreateIdentity(c *gin.Context) {
	if s.provisionUC == nil {
		writeError(c, domain.ErrIdentityNotFound)
		return
	}
	var req createIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "username and password are required")
		return
	}
	identity, err := s.provisionUC.Execute(c.Request.Context(), usecase.ProvisionIdentityRequest{
		Username:   req.Username,
		Credential: req.Password,
		Origin:     c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createIdentityResponse{
		IdentityID: identity.ID,
		Username:   identity.Username,
	})
}

func (s *Server) handleSign(c *gin.Context) {
	if s.signUC == nil {
		writeError(c, domain.ErrIdentityNotFound)
		return
	}
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if req.IdentityID <= 0 || req.Text == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "identity_id and text are required")
		return
	}
	if s.cfg.TextMaxBytes > 0 && len(req.Text) > s.cfg.TextMaxBytes {
		writeErrorCode(c, http.StatusBadRequest, "TEXT_TOO_LARGE", "text exceeds configured maximum")
		return
	}
	sig, err := s.signUC.Execute(c.Request.Context(), usecase.SignTextRequest{
		IdentityID: req.IdentityID,
		Text:       req.Text,
		Origin:     c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, signResponse{
		SignatureID: sig.ID,
		Algorithm:   sig.Algorithm,
		CreatedAt:   sig.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleVerify(c *gin.Context) {
	if s.verifyUC == nil {
		writeError(c, domain.ErrSignatureNotFound)
		return
	}
	result, err := s.verifyUC.Execute(c.Request.Context(), usecase.VerifySignatureRequest{
		SignatureID:     c.Param("signature_id"),
		RequesterOrigin: c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	out := verificationResponse{Status: string(result.Status)}
	if result.Status == domain.VerificationValid {
		out.SignatoryUsername = result.SignatoryUsername
		out.Algorithm = result.Algorithm
		out.SignedAt = result.SignedAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleListSignatures(c *gin.Context) {
	if s.listUC == nil {
		writeError(c, domain.ErrIdentityNotFound)
		return
	}
	var req listSignaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "username and password are required")
		return
	}
	summaries, err := s.listUC.Execute(c.Request.Context(), usecase.ListSignaturesRequest{
		Username:   req.Username,
		Credential: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]signatureSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, signatureSummaryResponse{
			SignatureID: summary.ID,
			TextPrefix:  summary.TextPrefix,
			CreatedAt:   summary.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, domain.ErrDuplicateUsername):
		status, code = http.StatusConflict, "DUPLICATE_USERNAME"
	case errors.Is(err, domain.ErrIdentityNotFound):
		status, code = http.StatusNotFound, "IDENTITY_NOT_FOUND"
	case errors.Is(err, domain.ErrSignatureNotFound):
		status, code = http.StatusNotFound, "SIGNATURE_NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidCredential):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIAL"
	case errors.Is(err, domain.ErrPolicyDenied):
		status, code = http.StatusForbidden, "POLICY_DENIED"
	case errors.Is(err, domain.ErrKeyGeneration):
		status, code = http.StatusInternalServerError, "KEY_GENERATION_FAILED"
	case errors.Is(err, domain.ErrSigningFailure):
		status, code = http.StatusInternalServerError, "SIGNING_FAILED"
	case errors.Is(err, domain.ErrPersistenceConflict):
		status, code = http.StatusInternalServerError, "PERSISTENCE_CONFLICT"
	}
	writeErrorCode(c, status, code, err.Error())
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}
