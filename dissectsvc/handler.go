// Package dissectsvc exposes the core dissector as a small HTTP
// service: POST /v1/dissect takes a hex-encoded PHY PDU plus optional
// keys and returns the parse tree and diagnostics as JSON.
package dissectsvc

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"

	lorawan "github.com/brocaar/lwdissect"
	"github.com/brocaar/lwdissect/replay"
)

// categoryReplay tags the diagnostic appended when the replay checker
// flags a frame; it extends the core taxonomy rather than reusing one
// of its categories, since replay detection is not a dissection
// concern.
const categoryReplay lorawan.Category = "replay"

// HandlerConfig holds the dissect handler configuration.
type HandlerConfig struct {
	Logger *log.Logger

	// ReplayChecker is consulted after a data-frame dissection; a nil
	// value disables replay checking entirely (the core dissector
	// never does this itself, per its no-I/O invariant).
	ReplayChecker replay.Checker
}

type handler struct {
	config HandlerConfig
	log    *log.Logger
}

// NewHandler creates a new dissection handler.
func NewHandler(config HandlerConfig) http.Handler {
	h := &handler{config: config, log: config.Logger}

	if h.log == nil {
		h.log = &log.Logger{Out: ioutil.Discard}
	}

	if h.config.ReplayChecker == nil {
		h.log.Warning("dissectsvc: no replay checker configured, duplicate frames will not be flagged")
	}

	return h
}

// dissectRequest is the POST /v1/dissect request body.
type dissectRequest struct {
	PHYPayload string  `json:"phy_pdu"`
	AppKey     *string `json:"app_key,omitempty"`
	NwkSKey    *string `json:"nwk_s_key,omitempty"`
	AppSKey    *string `json:"app_s_key,omitempty"`
	Version    string  `json:"mac_version,omitempty"`
	UpperFCnt  uint16  `json:"upper_fcnt,omitempty"`
	Region     string  `json:"region,omitempty"`
}

// dissectResponse is the POST /v1/dissect response body.
type dissectResponse struct {
	Tree        *lorawan.PhyPdu      `json:"tree,omitempty"`
	Diagnostics []lorawan.Diagnostic `json:"diagnostics,omitempty"`
	Error       string               `json:"error,omitempty"`
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/v1/dissect" {
		http.NotFound(w, r)
		return
	}

	b, err := ioutil.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "read body error")
		return
	}

	var req dissectRequest
	if err := json.Unmarshal(b, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	phyPDU, err := hex.DecodeString(req.PHYPayload)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "phy_pdu must be hex-encoded")
		return
	}

	opts, err := buildOptions(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tree, err := lorawan.Dissect(phyPDU, opts)
	if err != nil {
		h.log.WithFields(log.Fields{"error": err}).Warning("dissectsvc: dissect error")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.config.ReplayChecker != nil {
		if mp, ok := tree.Body.(*lorawan.MacPayload); ok {
			seen, rerr := h.config.ReplayChecker.Seen(r.Context(), mp.FHDR.DevAddr, mp.FHDR.FCnt)
			if rerr != nil {
				h.log.WithFields(log.Fields{"error": rerr}).Warning("dissectsvc: replay check failed")
			} else if seen {
				tree.Diagnostics.Warn(categoryReplay, "duplicate or replayed frame counter")
			}
		}
	}

	h.log.WithFields(log.Fields{
		"mtype":       tree.MHDR.MType,
		"diagnostics": len(tree.Diagnostics),
	}).Info("dissectsvc: dissected PHY PDU")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dissectResponse{Tree: tree, Diagnostics: tree.Diagnostics})
}

func (h *handler) writeError(w http.ResponseWriter, code int, msg string) {
	h.log.WithFields(log.Fields{"error": msg}).Error("dissectsvc: error handling request")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(dissectResponse{Error: msg})
}

func buildOptions(req dissectRequest) (lorawan.Options, error) {
	var opts lorawan.Options

	if req.AppKey != nil {
		var k lorawan.AES128Key
		if err := k.UnmarshalText([]byte(*req.AppKey)); err != nil {
			return opts, errors.New("app_key must be 16 hex bytes")
		}
		opts.AppKey = &k
	}
	if req.NwkSKey != nil {
		var k lorawan.AES128Key
		if err := k.UnmarshalText([]byte(*req.NwkSKey)); err != nil {
			return opts, errors.New("nwk_s_key must be 16 hex bytes")
		}
		opts.NwkSKey = &k
	}
	if req.AppSKey != nil {
		var k lorawan.AES128Key
		if err := k.UnmarshalText([]byte(*req.AppSKey)); err != nil {
			return opts, errors.New("app_s_key must be 16 hex bytes")
		}
		opts.AppSKey = &k
	}

	switch req.Version {
	case "", "1.0":
		opts.Version = lorawan.MACVersion10
	case "1.0.3", "1.0.4":
		opts.Version = lorawan.MACVersion103
	case "1.1":
		opts.Version = lorawan.MACVersion11
	default:
		return opts, errors.New("unsupported mac_version")
	}

	switch req.Region {
	case "", "EU868":
		opts.Region = lorawan.RegionEU868
	case "AS923":
		opts.Region = lorawan.RegionAS923
	case "US920":
		opts.Region = lorawan.RegionUS920
	default:
		return opts, errors.New("unsupported region")
	}

	opts.UpperFCnt = req.UpperFCnt
	return opts, nil
}
