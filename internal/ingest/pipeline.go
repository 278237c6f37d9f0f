package ingest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/extract"
	"talentmatch/internal/llm"
	"talentmatch/internal/objstore"
	"talentmatch/internal/storage"
	"talentmatch/internal/vectorstore"
)

var (
	// ErrNotCandidate is returned when a resume operation targets a
	// profile that is not a candidate.
	ErrNotCandidate = errors.New("profile is not a candidate")

	// ErrTextTooShort is returned when the extracted resume text is too
	// short to be worth indexing.
	ErrTextTooShort = errors.New("extracted resume text too short")
)

// Pipeline orchestrates resume ingestion: text extraction, object
// storage, embedding, vector upsert and the final profile update.
type Pipeline struct {
	profiles   storage.ProfileStore
	extractor  extract.Extractor
	embedder   llm.Embedder
	vectors    vectorstore.VectorStore
	objects    objstore.ObjectStore
	collection string
	minText    int
}

// NewPipeline creates a new ingestion pipeline. minText is the minimum
// number of characters the extracted text must have to be indexed.
func NewPipeline(
	profiles storage.ProfileStore,
	extractor extract.Extractor,
	embedder llm.Embedder,
	vectors vectorstore.VectorStore,
	objects objstore.ObjectStore,
	collection string,
	minText int,
) *Pipeline {
	return &Pipeline{
		profiles:   profiles,
		extractor:  extractor,
		embedder:   embedder,
		vectors:    vectors,
		objects:    objects,
		collection: collection,
		minText:    minText,
	}
}

// IngestResume processes an uploaded resume PDF for the given candidate.
//
// Text is extracted and validated first, so a broken or near-empty PDF
// is rejected before anything is written. Writes then happen in order:
// object file, vector point, profile row. A failure after the file is
// stored removes the file again; a failure of the final profile update
// also removes the vector point. The vector point ID is the profile ID,
// so a re-upload overwrites the previous vector in place, and the
// previous file is only deleted after the profile row has moved on.
func (p *Pipeline) IngestResume(ctx context.Context, profileID string, pdf []byte) error {
	logger := contextutil.LoggerFromContext(ctx)

	profile, err := p.profiles.GetByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.Role != storage.RoleCandidate {
		return ErrNotCandidate
	}

	// Extract and validate before any write.
	text, err := p.extractor.Extract(ctx, pdf)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}
	if len(text) < p.minText {
		return fmt.Errorf("%w: got %d characters, need at least %d", ErrTextTooShort, len(text), p.minText)
	}

	// The path carries the upload time, so re-uploads never collide and
	// the previous file survives until the new upload has committed.
	objectPath := path.Join("resumes", profileID, fmt.Sprintf("%d.pdf", time.Now().UTC().UnixNano()))
	if err := p.objects.Put(ctx, objectPath, pdf); err != nil {
		return fmt.Errorf("failed to store resume file: %w", err)
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		p.discardObject(ctx, objectPath)
		return fmt.Errorf("failed to embed resume text: %w", err)
	}
	if len(embeddings) != 1 {
		p.discardObject(ctx, objectPath)
		return fmt.Errorf("embedding count mismatch: expected 1, got %d", len(embeddings))
	}

	point := vectorstore.Point{
		ID:  profile.ID,
		Vec: embeddings[0],
		Meta: map[string]any{
			"candidate_id": profile.ID,
			"full_name":    profile.FullName,
			"role":         string(profile.Role),
		},
	}
	if err := p.vectors.Upsert(ctx, p.collection, []vectorstore.Point{point}); err != nil {
		p.discardObject(ctx, objectPath)
		return fmt.Errorf("failed to upsert resume vector: %w", err)
	}

	if err := p.profiles.UpdateResume(ctx, profile.ID, objectPath, text, profile.ID); err != nil {
		// Remove what this call wrote so the failed upload leaves no
		// artifacts behind. A re-upload loses its previous vector here
		// since the upsert already overwrote it; the next successful
		// upload repairs that.
		p.discardVector(ctx, profile.ID)
		p.discardObject(ctx, objectPath)
		return fmt.Errorf("failed to update profile: %w", err)
	}

	// The upload is committed. Drop the file it replaced, if any.
	if profile.ResumePath != "" && profile.ResumePath != objectPath {
		if err := p.objects.Delete(ctx, profile.ResumePath); err != nil {
			logger.WarnContext(ctx, "failed to delete replaced resume file", "path", profile.ResumePath, "error", err)
		}
	}

	logger.InfoContext(ctx, "resume ingested", "profile_id", profile.ID, "path", objectPath, "chars", len(text))
	return nil
}

// RemoveResume deletes the candidate's resume file and vector and clears
// the resume columns on the profile. Vector and file deletion are best
// effort; the profile is cleared even if they fail. Removing a profile
// without a resume is a no-op.
func (p *Pipeline) RemoveResume(ctx context.Context, profileID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	profile, err := p.profiles.GetByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.ResumePath == "" && profile.PointID == "" {
		return nil
	}

	if profile.PointID != "" {
		if err := p.vectors.Delete(ctx, p.collection, []string{profile.PointID}); err != nil {
			logger.WarnContext(ctx, "failed to delete resume vector", "point_id", profile.PointID, "error", err)
		}
	}
	if profile.ResumePath != "" {
		if err := p.objects.Delete(ctx, profile.ResumePath); err != nil {
			logger.WarnContext(ctx, "failed to delete resume file", "path", profile.ResumePath, "error", err)
		}
	}

	if err := p.profiles.ClearResume(ctx, profile.ID); err != nil {
		return fmt.Errorf("failed to clear profile resume: %w", err)
	}

	logger.InfoContext(ctx, "resume removed", "profile_id", profile.ID)
	return nil
}

// discardObject removes a file written by a failed ingest. It runs on a
// context that survives request cancellation.
func (p *Pipeline) discardObject(ctx context.Context, objectPath string) {
	logger := contextutil.LoggerFromContext(ctx)
	cleanupCtx := context.WithoutCancel(ctx)
	if err := p.objects.Delete(cleanupCtx, objectPath); err != nil {
		logger.WarnContext(ctx, "failed to remove orphaned resume file", "path", objectPath, "error", err)
	}
}

// discardVector removes a vector point written by a failed ingest. It
// runs on a context that survives request cancellation.
func (p *Pipeline) discardVector(ctx context.Context, pointID string) {
	logger := contextutil.LoggerFromContext(ctx)
	cleanupCtx := context.WithoutCancel(ctx)
	if err := p.vectors.Delete(cleanupCtx, p.collection, []string{pointID}); err != nil {
		logger.WarnContext(ctx, "failed to remove orphaned resume vector", "point_id", pointID, "error", err)
	}
}
