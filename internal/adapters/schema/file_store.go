package schema

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

// maxReportedViolations caps how many leaf violations end up in one message.
const maxReportedViolations = 5

// FileStore resolves schema names to JSON Schema documents inside a directory.
// Compiled schemas are cached for the lifetime of the store.
type FileStore struct {
	dir    string
	logger ports.Logger

	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

// FileStoreParams holds parameters for creating a file schema store
type FileStoreParams struct {
	Dir    string
	Logger ports.Logger
}

// NewFileStore creates a schema store rooted at params.Dir
func NewFileStore(params FileStoreParams) (*FileStore, error) {
	if strings.TrimSpace(params.Dir) == "" {
		return nil, errors.NewValidationError("schema directory cannot be empty")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	dir, err := filepath.Abs(params.Dir)
	if err != nil {
		return nil, errors.NewResourceError(fmt.Sprintf("cannot resolve schema directory %s", params.Dir), err)
	}

	return &FileStore{
		dir:      dir,
		logger:   params.Logger,
		compiled: make(map[string]*jsonschema.Schema),
	}, nil
}

// Validate checks document against the schema file called schemaName
func (s *FileStore) Validate(schemaName string, document interface{}) error {
	sch, err := s.schema(schemaName)
	if err != nil {
		return err
	}

	if err := sch.Validate(document); err != nil {
		var verr *jsonschema.ValidationError
		if stderrors.As(err, &verr) {
			return errors.NewSchemaViolationError(
				fmt.Sprintf("response does not match %s: %s", schemaName, summarize(verr)), err)
		}
		return errors.NewResourceError(fmt.Sprintf("validating against %s failed", schemaName), err)
	}

	return nil
}

func (s *FileStore) schema(name string) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sch, ok := s.compiled[name]; ok {
		return sch, nil
	}

	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewResourceError(fmt.Sprintf("schema %s cannot be read", name), err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
		return nil, errors.NewResourceError(fmt.Sprintf("schema %s is not valid JSON", name), err)
	}

	sch, err := compiler.Compile(path)
	if err != nil {
		return nil, errors.NewResourceError(fmt.Sprintf("schema %s cannot be compiled", name), err)
	}

	s.compiled[name] = sch
	s.logger.Debug("Compiled schema", ports.F("schema", name), ports.F("path", path))
	return sch, nil
}

// resolve keeps lookups inside the schema directory.
func (s *FileStore) resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.NewResourceError("schema name cannot be empty", nil)
	}

	path := filepath.Join(s.dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewResourceError(fmt.Sprintf("schema %s is outside %s", name, s.dir), nil)
	}

	if _, err := os.Stat(path); err != nil {
		return "", errors.NewResourceError(fmt.Sprintf("schema %s not found in %s", name, s.dir), err)
	}

	return path, nil
}

func summarize(verr *jsonschema.ValidationError) string {
	var leaves []string
	collectLeaves(verr, &leaves)
	sort.Strings(leaves)

	if len(leaves) > maxReportedViolations {
		extra := len(leaves) - maxReportedViolations
		leaves = append(leaves[:maxReportedViolations], fmt.Sprintf("and %d more", extra))
	}
	return strings.Join(leaves, "; ")
}

func collectLeaves(verr *jsonschema.ValidationError, out *[]string) {
	if len(verr.Causes) == 0 {
		location := verr.InstanceLocation
		if location == "" {
			location = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", location, verr.Message))
		return
	}
	for _, cause := range verr.Causes {
		collectLeaves(cause, out)
	}
}
