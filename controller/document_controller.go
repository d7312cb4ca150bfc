// controller/document_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/service"
	"github.com/nikhilsag/hrbridge/util"
	helper_util "github.com/nikhilsag/hrbridge/util/helper"
)

type DocumentController struct {
	documentService service.IDocumentService
	confirmations   service.IConfirmationService
}

func NewDocumentController(documentService service.IDocumentService, confirmations service.IConfirmationService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		confirmations:   confirmations,
	}
}

func (ctrl *DocumentController) RegisterRoutes(r *gin.RouterGroup) {
	documents := r.Group("/documents")
	{
		documents.GET("", ctrl.ListDocuments)
		documents.POST("", ctrl.UploadDocument)
		documents.POST("/batch", ctrl.UploadDocuments)
		documents.POST("/:id/archive", ctrl.ArchiveDocument)
		documents.DELETE("/:id", ctrl.DeleteDocument)
	}
}

func (ctrl *DocumentController) ListDocuments(c *gin.Context) {
	var filter model.DocumentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	documents, err := ctrl.documentService.ListDocuments(c.Request.Context(), filter)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, documents)
}

func (ctrl *DocumentController) UploadDocument(c *gin.Context) {
	var payload model.UploadDocumentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	document, err := ctrl.documentService.UploadDocument(c.Request.Context(), payload)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusCreated, document)
}

func (ctrl *DocumentController) UploadDocuments(c *gin.Context) {
	var payloads []model.UploadDocumentPayload
	if err := c.ShouldBindJSON(&payloads); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	documents, err := ctrl.documentService.UploadDocuments(c.Request.Context(), payloads)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusCreated, documents)
}

func (ctrl *DocumentController) ArchiveDocument(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("document ID must be numeric"))
		return
	}

	document, err := ctrl.documentService.ArchiveDocument(c.Request.Context(), id)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, document)
}

func (ctrl *DocumentController) DeleteDocument(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("document ID must be numeric"))
		return
	}

	decision := confirmDecision{ConfirmationToken: c.Query("confirmation_token")}
	if raw, ok := c.GetQuery("confirm"); ok {
		confirmed := raw != "false"
		decision.Confirm = &confirmed
	}

	if decision.declined() {
		ctrl.confirmations.Cancel(decision.ConfirmationToken)
		util.RespondWithError(c, apierrors.NewOperationCancelledError("delete_document"))
		return
	}

	preview, err := ctrl.documentService.DeleteDocument(c.Request.Context(), id, decision.ConfirmationToken)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	if preview != nil {
		respondPending(c, preview)
		return
	}
	c.Status(http.StatusNoContent)
}
