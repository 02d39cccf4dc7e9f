package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-backend/errs"
	"portfolio-backend/models"
	"portfolio-backend/services"
)

// maxFieldBytes caps a single non-file form field
const maxFieldBytes = 1 << 20

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     ProjectStore
	uploader  MediaUploader
	// rollbackUploads removes already-uploaded media when the save fails.
	// Off by default: the orphaned object is only logged.
	rollbackUploads bool
}

func newProjectHandler(store ProjectStore, uploader MediaUploader, rollbackUploads bool) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		store:           store,
		uploader:        uploader,
		rollbackUploads: rollbackUploads,
	}
}

// projectForm holds the decoded multipart request. File parts are uploaded
// to the media store while the body is read, so imageURL/videoURL already
// point at durable URLs by the time parsing returns.
type projectForm struct {
	values   map[string]string
	imageURL *string
	videoURL *string
}

func (f *projectForm) get(name string) string {
	return f.values[name]
}

// readProjectForm streams the multipart body: regular fields are collected,
// imageFile/videoFile parts go straight to the uploader without any local
// staging. Unknown file parts are skipped.
func (h projectHandler) readProjectForm(r *http.Request) (*projectForm, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, mapMultipartError(err)
	}

	form := &projectForm{values: make(map[string]string)}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, mapMultipartError(err)
		}

		name := part.FormName()
		if part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return nil, mapMultipartError(err)
			}
			form.values[name] = string(value)
			continue
		}

		var kind services.AssetKind
		switch name {
		case "imageFile":
			kind = services.AssetImage
		case "videoFile":
			kind = services.AssetVideo
		default:
			// NextPart discards the remainder of an unread part
			continue
		}

		// Part length is unknown up front; the uploader streams it
		url, err := h.uploader.Upload(r.Context(), kind, part.FileName(), part, -1, part.Header.Get("Content-Type"))
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
			}
			return nil, errs.NewUploadError(name, err)
		}

		if kind == services.AssetImage {
			form.imageURL = &url
		} else {
			form.videoURL = &url
		}
	}

	return form, nil
}

// mapMultipartError distinguishes a body that blew past the request cap from
// a body that is simply malformed
func mapMultipartError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
	}
	return errs.NewMalformedPayloadError("multipart", err)
}

// discardOrphans handles media that was uploaded before the save failed.
// With rollback disabled the orphaned object stays and is logged; with it
// enabled removal is best effort and a failure is also just logged.
func (h projectHandler) discardOrphans(ctx context.Context, form *projectForm) {
	for field, url := range map[string]*string{"imageUrl": form.imageURL, "videoUrl": form.videoURL} {
		if url == nil {
			continue
		}
		if !h.rollbackUploads {
			h.logger.Warn().Str(field, *url).Msg("Orphaned media upload after failed save")
			continue
		}
		if err := h.uploader.Remove(ctx, *url); err != nil {
			h.logger.Warn().Err(err).Str(field, *url).Msg("Failed to remove orphaned media upload")
		}
	}
}

// getAllProjects retrieves all projects
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a new project, uploading any provided media first
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := h.readProjectForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			Title:              form.get("title"),
			Description:        form.get("description"),
			Category:           form.get("category"),
			Link:               form.get("link"),
			Status:             models.StatusDraft,
			ImageURL:           form.imageURL,
			VideoURL:           form.videoURL,
			ProjectDescription: form.get("projectDescription"),
		}

		if frontendRepo := form.get("frontendRepo"); frontendRepo != "" {
			project.FrontendGithubLink = &frontendRepo
		}
		if backendRepo := form.get("backendRepo"); backendRepo != "" {
			project.BackendGithubLink = &backendRepo
		}

		if status := form.get("status"); status != "" {
			if !models.IsValidStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be draft or published"))
				return
			}
			project.Status = status
		}

		if err := h.store.Add(r.Context(), &project); err != nil {
			h.discardOrphans(r.Context(), form)
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a first-non-empty merge onto an existing project.
// An omitted or empty field leaves the stored value unchanged.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.store.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		form, err := h.readProjectForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if form.imageURL != nil {
			project.ImageURL = form.imageURL
		}
		if form.videoURL != nil {
			project.VideoURL = form.videoURL
		}

		if title := form.get("title"); title != "" {
			project.Title = title
		}
		if description := form.get("description"); description != "" {
			project.Description = description
		}
		if category := form.get("category"); category != "" {
			project.Category = category
		}
		if link := form.get("link"); link != "" {
			project.Link = link
		}
		if frontendRepo := form.get("frontendRepo"); frontendRepo != "" {
			project.FrontendGithubLink = &frontendRepo
		}
		if backendRepo := form.get("backendRepo"); backendRepo != "" {
			project.BackendGithubLink = &backendRepo
		}
		if projectDescription := form.get("projectDescription"); projectDescription != "" {
			project.ProjectDescription = projectDescription
		}
		if status := form.get("status"); status != "" {
			if !models.IsValidStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be draft or published"))
				return
			}
			project.Status = status
		}

		if err := h.store.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject removes a project unconditionally; deleting an absent id
// still acknowledges success
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.store.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Project deleted successfully",
		})
	}
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
