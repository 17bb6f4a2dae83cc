package v1

import (
	"net/http"

	"job-posting-backend/internal/delivery/http/response"
	"job-posting-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PostAreaHandler struct {
	postAreaUC domain.PostAreaUsecase
}

func NewPostAreaHandler(public *gin.RouterGroup, postAreaUC domain.PostAreaUsecase) {
	handler := &PostAreaHandler{postAreaUC: postAreaUC}
	public.GET("/post-areas", handler.Tree)
}

// ListPostAreas godoc
// @Summary      List categories
// @Description  Categories with their subcategories
// @Tags         post-areas
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /post-areas [get]
func (h *PostAreaHandler) Tree(c *gin.Context) {
	tree, err := h.postAreaUC.ListCategoryTree(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post areas", tree)
}
