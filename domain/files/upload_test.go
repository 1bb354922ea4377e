package files_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/emergent-company/atlas/domain/files"
	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/storage"
	"github.com/emergent-company/atlas/internal/testutil"
	"github.com/emergent-company/atlas/pkg/paging"
)

// bucket is a map-backed files.BlobStore.
type bucket map[string][]byte

func (b bucket) Enabled() bool { return true }

func (b bucket) Put(_ context.Context, key string, data []byte, _ string) error {
	b[key] = append([]byte(nil), data...)
	return nil
}

func (b bucket) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := b[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b bucket) Delete(_ context.Context, key string) error {
	delete(b, key)
	return nil
}

type UploadSuite struct {
	testutil.BaseSuite
	blobs  bucket
	svc    *files.Service
	implID string
}

func TestUploadSuite(t *testing.T) {
	s := &UploadSuite{}
	s.SetDBSuffix("files")
	suite.Run(t, s)
}

func (s *UploadSuite) SetupTest() {
	s.BaseSuite.SetupTest()
	s.SkipIfExternalServer("uses the file service directly")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.blobs = bucket{}
	s.svc = files.NewService(s.DB(), files.NewRepository(s.DB(), log), s.blobs, &config.Config{}, log)

	algID := s.MustCreate("/api/v1/algorithms", map[string]any{"name": "Shor", "computationModel": "CLASSIC"})
	s.implID = s.MustCreate("/api/v1/algorithms/"+algID+"/implementations", map[string]any{"name": "shor-qiskit"})
}

func (s *UploadSuite) TestSameNameReusesRow() {
	first, created, err := s.svc.Upload(s.Ctx, s.implID, files.Upload{Name: "circuit.qasm", MimeType: "text/plain", Data: []byte("OPENQASM 2.0;")})
	s.Require().NoError(err)
	s.True(created)

	second, created, err := s.svc.Upload(s.Ctx, s.implID, files.Upload{Name: "circuit.qasm", MimeType: "text/plain", Data: []byte("OPENQASM 3.0;")})
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, second.ID)
	s.Equal(int64(len("OPENQASM 3.0;")), second.Size)

	key := storage.ObjectKey(s.implID, "circuit.qasm")
	s.Equal([]byte("OPENQASM 3.0;"), s.blobs[key])
	s.Len(s.blobs, 1)

	page, err := s.svc.List(s.Ctx, s.implID, paging.Request{Size: 10})
	s.Require().NoError(err)
	s.Equal(1, page.Page.TotalElements)
}

func (s *UploadSuite) TestNamesDifferingInCaseAreSeparateFiles() {
	a, _, err := s.svc.Upload(s.Ctx, s.implID, files.Upload{Name: "A.txt", Data: []byte("upper")})
	s.Require().NoError(err)
	b, created, err := s.svc.Upload(s.Ctx, s.implID, files.Upload{Name: "a.txt", Data: []byte("lower")})
	s.Require().NoError(err)

	s.True(created)
	s.NotEqual(a.ID, b.ID)
	s.Len(s.blobs, 2)
}
