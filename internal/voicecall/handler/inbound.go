package handler

import (
	"fmt"
	"net/http"

	"livekit-henryk/internal/apierrors"
	"livekit-henryk/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/twiml"
)

// HandleInboundCall handles POST /twilio/inbound. It answers with TwiML that
// bridges the caller into the voice platform over SIP, where a dispatch rule
// creates the room and the agent.
func (h *Handler) HandleInboundCall(c *gin.Context) {
	ctx := c.Request.Context()

	if err := c.Request.ParseForm(); err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid form body"))
		return
	}

	if h.twilio != nil {
		params := make(map[string]string, len(c.Request.PostForm))
		for key := range c.Request.PostForm {
			params[key] = c.Request.PostForm.Get(key)
		}
		if !h.twilio.Validate(requestURL(c.Request), params, c.GetHeader("X-Twilio-Signature")) {
			h.logger.Warn(ctx, "rejected inbound call with invalid Twilio signature")
			apierrors.RespondWithError(c, apierrors.Unauthorized(apierrors.CodeInvalidSignature, "Twilio signature could not be verified"))
			return
		}
	}

	to := c.Request.PostForm.Get("To")
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_sid", Value: c.Request.PostForm.Get("CallSid")},
		observability.Field{Key: "to", Value: to},
	)

	uri, err := h.voiceProcessor.InboundSIPURI(to)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	twimlResult, err := twiml.Voice([]twiml.Element{
		twiml.VoiceDial{
			InnerElements: []twiml.Element{twiml.VoiceSip{SipUrl: uri}},
		},
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	h.logger.Info(ctx, fmt.Sprintf("bridging inbound call to %s", uri))
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, twimlResult)
}

// requestURL rebuilds the public URL Twilio signed, honoring a TLS-terminating proxy.
func requestURL(r *http.Request) string {
	scheme := "https"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
