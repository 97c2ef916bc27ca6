package orchestrator

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"siso/internal/client/apiclient"
	"siso/internal/client/transfer"
	"siso/internal/domain/entity"
	"siso/pkg/errors"
	"siso/pkg/logger"
)

type State int

const (
	Idle State = iota
	CredentialRequested
	Transferring
	RecordingMetadata
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CredentialRequested:
		return "credential_requested"
	case Transferring:
		return "transferring"
	case RecordingMetadata:
		return "recording_metadata"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var ErrFlowInProgress = stderrors.New("an upload is already in progress")

// Backend is the siso API as seen by the orchestrator.
type Backend interface {
	IssueCredential(ctx context.Context, fileName, contentType, requestID string) (*entity.UploadCredential, error)
	RecordUpload(ctx context.Context, req apiclient.RecordRequest) (*entity.UploadRecord, error)
}

type Transport interface {
	Put(ctx context.Context, writeURL string, body io.Reader, contentType string) (*transfer.Result, error)
}

type Request struct {
	Title       string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Outcome struct {
	Record     *entity.UploadRecord
	Credential *entity.UploadCredential
	RequestID  string
	Checksum   string
	ETag       string
}

// Orchestrator runs credential issuance, the direct transfer and the record
// write strictly in sequence. Only one run may be in flight at a time.
type Orchestrator struct {
	backend   Backend
	transport Transport
	ownerID   string

	// OnStateChange, when set, observes every transition.
	OnStateChange func(from, to State)

	running atomic.Bool
	mu      sync.Mutex
	state   State
	err     error
	now     func() time.Time
}

func New(backend Backend, transport Transport, ownerID string) *Orchestrator {
	return &Orchestrator{
		backend:   backend,
		transport: transport,
		ownerID:   ownerID,
		now:       time.Now,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Err is the reason for the last Failed state.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *Orchestrator) Run(ctx context.Context, req Request) (*Outcome, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrFlowInProgress
	}
	defer o.running.Store(false)

	o.mu.Lock()
	o.state = Idle
	o.err = nil
	o.mu.Unlock()

	req.Title = strings.TrimSpace(req.Title)
	if err := Validate(req); err != nil {
		return nil, o.fail(err)
	}

	payload, checksum, err := readPayload(req)
	if err != nil {
		return nil, o.fail(err)
	}

	requestID := uuid.NewString()

	o.transition(CredentialRequested)
	credential, err := o.backend.IssueCredential(ctx, req.FileName, req.ContentType, requestID)
	if err != nil {
		return nil, o.fail(asAppError(err, func(err error) *errors.AppError {
			return errors.Issuer("Failed to generate upload URL", err)
		}))
	}

	o.transition(Transferring)
	if credential.Expired(o.now()) {
		return nil, o.fail(errors.Transfer(errors.TransferStorage, "The upload link expired before the transfer started. Please try again.", nil).
			WithDetail("expires_at", credential.ExpiresAt))
	}

	result, err := o.transport.Put(ctx, credential.WriteURL, bytes.NewReader(payload), credential.ContentType)
	if err != nil {
		return nil, o.fail(asAppError(err, func(err error) *errors.AppError {
			return errors.Transfer(errors.TransferUnknown, "Upload failed. Please try again.", err)
		}))
	}

	o.transition(RecordingMetadata)
	recorded, err := o.backend.RecordUpload(ctx, apiclient.RecordRequest{
		OwnerID:     o.ownerID,
		Title:       req.Title,
		FileURL:     credential.PublicURL,
		StoragePath: credential.StorageKey,
		FileName:    req.FileName,
		FileType:    credential.ContentType,
		FileSize:    int64(len(payload)),
		Checksum:    checksum,
		RequestID:   requestID,
	})
	if err != nil {
		// The object is already stored; it stays until reconciliation.
		logger.LogUploadError(credential.StorageKey, "record", err)
		return nil, o.fail(asAppError(err, func(err error) *errors.AppError {
			return errors.Persistence("Failed to save upload record", err)
		}))
	}

	o.transition(Done)
	return &Outcome{
		Record:     recorded,
		Credential: credential,
		RequestID:  requestID,
		Checksum:   checksum,
		ETag:       result.ETag,
	}, nil
}

// Validate applies the local upload policy. It makes no network calls.
func Validate(req Request) error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return errors.Validation("Please enter a title for your track")
	case strings.TrimSpace(req.FileName) == "":
		return errors.Validation("Please choose a file to upload")
	case !entity.IsAllowedAudioType(req.ContentType):
		return errors.Validation("Only MP3, WAV and OGG audio files can be uploaded")
	case req.Size <= 0:
		return errors.Validation("The selected file is empty")
	case req.Size > entity.MaxAudioBytes:
		return errors.Validation("Audio files must be 20 MB or smaller")
	case req.Body == nil:
		return errors.Validation("Please choose a file to upload")
	}
	return nil
}

func (o *Orchestrator) transition(to State) {
	o.mu.Lock()
	from := o.state
	o.state = to
	o.mu.Unlock()

	if o.OnStateChange != nil {
		o.OnStateChange(from, to)
	}
}

func (o *Orchestrator) fail(err error) error {
	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
	o.transition(Failed)
	return err
}

// asAppError keeps API-classified errors as they are and classifies the rest
// by the step they happened in.
func asAppError(err error, classify func(error) *errors.AppError) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return classify(err)
}

// readPayload loads at most Size+1 bytes of the body and hashes them on the
// way in. A body that is shorter or longer than Size is rejected before any
// network call.
func readPayload(req Request) ([]byte, string, error) {
	hash := md5.New()
	payload, err := io.ReadAll(io.TeeReader(io.LimitReader(req.Body, req.Size+1), hash))
	if err != nil {
		return nil, "", errors.Validation("The selected file could not be read")
	}
	if int64(len(payload)) != req.Size {
		return nil, "", errors.Validation(fmt.Sprintf("The selected file is not %d bytes long; it may have changed", req.Size))
	}
	return payload, hex.EncodeToString(hash.Sum(nil)), nil
}
