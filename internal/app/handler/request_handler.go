package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"itsupport/internal/app/ds"
	"itsupport/internal/app/dto"
	"itsupport/internal/app/form"
	"itsupport/internal/app/middleware"
	"itsupport/internal/app/redis"
	"itsupport/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateDraft opens a new request form at the contact step. Optional
// ?service= and ?plan= query parameters prefill the details step; invalid
// values are ignored rather than rejected.
// @Summary Nouvelle demande (brouillon)
// @Tags Requests
// @Produce json
// @Param service query string false "Type de service préselectionné"
// @Param plan query string false "Forfait préselectionné"
// @Success 201 {object} dto.DraftResponse
// @Router /api/requests/drafts [post]
func (h *APIHandler) CreateDraft(ctx *gin.Context) {
	serviceType := ds.ServiceType(ctx.Query("service"))
	plan := ds.Plan(ctx.Query("plan"))

	draft := form.NewDraft(serviceType, plan)
	if err := h.Drafts.SaveDraft(ctx.Request.Context(), draft); err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors de la création du brouillon")
		return
	}

	ctx.JSON(http.StatusCreated, draftToDTO(draft))
}

// GetDraft returns the current state of a form draft.
// @Summary Brouillon courant
// @Tags Requests
// @Produce json
// @Param id path string true "ID du brouillon"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/drafts/{id} [get]
func (h *APIHandler) GetDraft(ctx *gin.Context) {
	draft, ok := h.loadDraft(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, draftToDTO(draft))
}

// UpdateDraft applies edits to the draft. Only the fields of the current
// step are taken from the payload, so a stale client cannot overwrite data
// belonging to another step.
// @Summary Modifier le brouillon
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "ID du brouillon"
// @Param request body dto.UpdateDraftRequest true "Champs du formulaire"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/requests/drafts/{id} [put]
func (h *APIHandler) UpdateDraft(ctx *gin.Context) {
	draft, ok := h.loadDraft(ctx)
	if !ok {
		return
	}

	var req dto.UpdateDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	switch draft.Step {
	case form.StepContact:
		if req.FullName != nil {
			draft.FullName = *req.FullName
		}
		if req.Email != nil {
			draft.Email = *req.Email
		}
		if req.Phone != nil {
			draft.Phone = *req.Phone
		}
		if req.Company != nil {
			draft.Company = *req.Company
		}
	case form.StepDetails:
		if req.ServiceType != nil {
			st := ds.ServiceType(*req.ServiceType)
			if *req.ServiceType != "" && !st.Valid() {
				h.errorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("type de service inconnu: %s", *req.ServiceType))
				return
			}
			draft.ServiceType = st
		}
		if req.Plan != nil {
			p := ds.Plan(*req.Plan)
			if *req.Plan != "" && !p.Valid() {
				h.errorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("forfait inconnu: %s", *req.Plan))
				return
			}
			draft.Plan = p
		}
		if req.Description != nil {
			draft.Description = *req.Description
		}
	case form.StepReview:
		h.errorResponse(ctx, http.StatusBadRequest, "le récapitulatif n'est pas modifiable, revenez à l'étape précédente")
		return
	}

	if err := h.Drafts.SaveDraft(ctx.Request.Context(), draft); err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors de l'enregistrement du brouillon")
		return
	}

	ctx.JSON(http.StatusOK, draftToDTO(draft))
}

// AdvanceDraft moves the form to the next step. Leaving the contact step
// requires name, email and phone to be filled in.
// @Summary Étape suivante
// @Tags Requests
// @Produce json
// @Param id path string true "ID du brouillon"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/requests/drafts/{id}/advance [post]
func (h *APIHandler) AdvanceDraft(ctx *gin.Context) {
	draft, ok := h.loadDraft(ctx)
	if !ok {
		return
	}

	if err := draft.Advance(); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Drafts.SaveDraft(ctx.Request.Context(), draft); err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors de l'enregistrement du brouillon")
		return
	}

	ctx.JSON(http.StatusOK, draftToDTO(draft))
}

// BackDraft returns to the previous step without validation or data loss.
// @Summary Étape précédente
// @Tags Requests
// @Produce json
// @Param id path string true "ID du brouillon"
// @Success 200 {object} dto.DraftResponse
// @Router /api/requests/drafts/{id}/back [post]
func (h *APIHandler) BackDraft(ctx *gin.Context) {
	draft, ok := h.loadDraft(ctx)
	if !ok {
		return
	}

	draft.Back()

	if err := h.Drafts.SaveDraft(ctx.Request.Context(), draft); err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors de l'enregistrement du brouillon")
		return
	}

	ctx.JSON(http.StatusOK, draftToDTO(draft))
}

// SubmitDraft turns a review-step draft into a persistent service request.
// The optional attachment is uploaded first; if the insert then fails the
// uploaded object is deleted best-effort and the draft stays intact so the
// user can retry without losing entered data.
// @Summary Envoyer la demande
// @Tags Requests
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID du brouillon"
// @Param file formData file false "Pièce jointe (10MB max)"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests/drafts/{id}/submit [post]
func (h *APIHandler) SubmitDraft(ctx *gin.Context) {
	identity, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	draft, ok := h.loadDraft(ctx)
	if !ok {
		return
	}

	if draft.Step != form.StepReview {
		h.errorResponse(ctx, http.StatusBadRequest, "la demande ne peut être envoyée que depuis le récapitulatif")
		return
	}

	var fileKey, fileName *string
	fileHeader, err := ctx.FormFile("file")
	if err == nil {
		if fileHeader.Size > h.Config.Upload.MaxFileSize {
			h.errorResponse(ctx, http.StatusBadRequest,
				fmt.Sprintf("fichier trop volumineux (max %d Mo)", h.Config.Upload.MaxFileSize>>20))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.errorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			h.errorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}

		key, err := h.Storage.UploadFile(data, fileHeader.Filename)
		if err != nil {
			// Submission fails verbatim; the draft is untouched.
			logrus.Error("Error uploading attachment: ", err)
			h.errorResponse(ctx, http.StatusInternalServerError, err.Error())
			return
		}
		name := fileHeader.Filename
		fileKey = &key
		fileName = &name
	}

	request := &ds.ServiceRequest{
		CreatedAt:   time.Now(),
		CreatorID:   identity.UserID,
		FullName:    draft.FullName,
		Email:       draft.Email,
		Phone:       draft.Phone,
		Company:     draft.Company,
		ServiceType: draft.ServiceType,
		Plan:        draft.Plan,
		Description: draft.Description,
		FileKey:     fileKey,
		FileName:    fileName,
		Status:      ds.StatusPending,
		TotalAmount: draft.Plan.Amount(),
	}

	if err := h.Repository.CreateRequest(request); err != nil {
		logrus.Error("Error creating request: ", err)
		if fileKey != nil {
			// Best effort: do not leave an orphaned object behind.
			if delErr := h.Storage.DeleteFile(*fileKey); delErr != nil {
				logrus.Warn("Error deleting orphaned attachment ", *fileKey, ": ", delErr)
			}
		}
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors de l'envoi de la demande")
		return
	}

	if err := h.Drafts.DeleteDraft(ctx.Request.Context(), draft.ID); err != nil {
		logrus.Warn("Error deleting submitted draft ", draft.ID, ": ", err)
	}

	ctx.JSON(http.StatusCreated, h.requestToDTO(request))
}

// ListRequests returns all requests newest first, with optional status and
// date range filters. Admin only.
// @Summary Liste des demandes
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filtrer par statut"
// @Param date_from query string false "Date de début (RFC 3339 ou AAAA-MM-JJ)"
// @Param date_to query string false "Date de fin (RFC 3339 ou AAAA-MM-JJ)"
// @Success 200 {object} dto.RequestListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/requests [get]
func (h *APIHandler) ListRequests(ctx *gin.Context) {
	status := ds.Status(ctx.Query("status"))
	if status != "" && !status.Valid() {
		h.errorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("statut inconnu: %s", status))
		return
	}

	dateFrom, err := parseDateParam(ctx.Query("date_from"))
	if err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}
	dateTo, err := parseDateParam(ctx.Query("date_to"))
	if err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := h.Repository.GetRequests(status, dateFrom, dateTo)
	if err != nil {
		logrus.Error("Error listing requests: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors du chargement des demandes")
		return
	}

	response := dto.RequestListResponse{
		Requests: make([]dto.RequestResponse, 0, len(requests)),
		Total:    len(requests),
	}
	for i := range requests {
		response.Requests = append(response.Requests, h.requestToDTO(&requests[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetRequest returns one request with its download link and the actions the
// current status offers. Admin only.
// @Summary Détail d'une demande
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la demande"
// @Success 200 {object} dto.RequestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [get]
func (h *APIHandler) GetRequest(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "identifiant invalide")
		return
	}

	request, err := h.Repository.GetRequestByID(uint(id))
	if err != nil {
		h.errorResponse(ctx, http.StatusNotFound, "demande introuvable")
		return
	}

	ctx.JSON(http.StatusOK, h.requestToDTO(request))
}

// UpdateRequestStatus applies one workflow transition. The target must be a
// known status reachable from the current one; anything else is rejected
// without touching the record. Admin only.
// @Summary Changer le statut
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la demande"
// @Param request body dto.UpdateStatusRequest true "Nouveau statut"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/status [put]
func (h *APIHandler) UpdateRequestStatus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "identifiant invalide")
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	next := ds.Status(req.Status)
	if !next.Valid() {
		h.errorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("statut inconnu: %s", req.Status))
		return
	}

	request, err := h.Repository.GetRequestByID(uint(id))
	if err != nil {
		h.errorResponse(ctx, http.StatusNotFound, "demande introuvable")
		return
	}

	if !request.Status.CanTransitionTo(next) {
		h.errorResponse(ctx, http.StatusConflict,
			fmt.Sprintf("transition impossible: %s -> %s", request.Status, next))
		return
	}

	if err := h.Repository.UpdateRequestStatus(request.ID, request.Status, next); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			h.errorResponse(ctx, http.StatusConflict, err.Error())
			return
		}
		logrus.Error("Error updating request status: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors du changement de statut")
		return
	}

	request.Status = next
	ctx.JSON(http.StatusOK, h.requestToDTO(request))
}

// loadDraft fetches the draft named in the path, writing the error response
// itself when it is missing or expired.
func (h *APIHandler) loadDraft(ctx *gin.Context) (*form.Draft, bool) {
	draft, err := h.Drafts.GetDraft(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, redis.ErrDraftNotFound) {
			h.errorResponse(ctx, http.StatusNotFound, "brouillon introuvable ou expiré")
		} else {
			logrus.Error("Error loading draft: ", err)
			h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors du chargement du brouillon")
		}
		return nil, false
	}
	return draft, true
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("date invalide: %s", value)
}

func draftToDTO(d *form.Draft) dto.DraftResponse {
	resp := dto.DraftResponse{
		ID:          d.ID,
		Step:        string(d.Step),
		FullName:    d.FullName,
		Email:       d.Email,
		Phone:       d.Phone,
		Company:     d.Company,
		ServiceType: string(d.ServiceType),
		Plan:        string(d.Plan),
		Description: d.Description,
	}
	if d.Step == form.StepReview {
		s := d.Summary()
		resp.Summary = &dto.SummaryResponse{
			ServiceLabel: s.ServiceLabel,
			PlanLabel:    s.PlanLabel,
			TotalAmount:  s.TotalAmount,
			TotalLabel:   s.TotalLabel,
		}
	}
	return resp
}

func (h *APIHandler) requestToDTO(r *ds.ServiceRequest) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:            r.ID,
		CreatedAt:     r.CreatedAt,
		FullName:      r.FullName,
		Email:         r.Email,
		Phone:         r.Phone,
		Company:       r.Company,
		ServiceType:   string(r.ServiceType),
		Plan:          string(r.Plan),
		Description:   r.Description,
		FileName:      r.FileName,
		Status:        string(r.Status),
		StatusLabel:   r.Status.Label(),
		PaymentStatus: string(r.PaymentStatus),
		TotalAmount:   r.TotalAmount,
		Actions:       make([]string, 0),
	}
	if r.ServiceType != "" {
		resp.ServiceLabel = r.ServiceType.Label()
	}
	if r.Plan != "" {
		resp.PlanLabel = r.Plan.Label()
	}
	if r.FileKey != nil {
		url := h.Storage.PublicURL(*r.FileKey)
		resp.FileURL = &url
	}
	for _, next := range r.Status.NextStatuses() {
		resp.Actions = append(resp.Actions, string(next))
	}
	return resp
}
