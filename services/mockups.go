package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/errs"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// GenerateMarketingMockups renders the three sales-page mockups from the
// project's cover image (the first chapter illustration). The three renders
// run concurrently; each falls back to the cover itself on failure.
func (o *Orchestrator) GenerateMarketingMockups(ctx context.Context, projectID, userID uuid.UUID) error {
	project, err := o.store.GetProject(projectID)
	if err != nil {
		return err
	}

	chapters, err := o.store.ChaptersByProject(projectID, "")
	if err != nil {
		return err
	}

	coverImage := ""
	for _, chapter := range chapters {
		if chapter.ImageURL != nil && *chapter.ImageURL != "" {
			coverImage = *chapter.ImageURL
			break
		}
	}
	if coverImage == "" {
		return errs.NewBadRequestError("no cover image available for mockup generation")
	}

	log.Info().
		Str("projectId", projectID.String()).
		Str("title", project.Title).
		Msg("Generating marketing mockups")

	mockupTypes := []string{
		models.MockupTypeTabletOffice,
		models.MockupTypeBook3D,
		models.MockupTypeMultiDevice,
	}
	rendered := make([]string, len(mockupTypes))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, mockupType := range mockupTypes {
		group.Go(func() error {
			rendered[i] = o.engine.GenerateMarketingMockup(groupCtx, userID, project.Title, coverImage, mockupType)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for i, mockupType := range mockupTypes {
		if err := o.store.AddMockup(&models.Mockup{
			ProjectID: projectID,
			Type:      mockupType,
			ImageURL:  rendered[i],
			Metadata:  mockupMetadata(project.Title, project.Style),
		}); err != nil {
			return err
		}
	}
	return nil
}
