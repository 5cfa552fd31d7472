package server

import (
	"devhub/internal/middleware"
	"devhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/comment/:id
// @Summary Comment on post
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param request body service.CreateCommentInput true "Comment body"
// @Success 200 {array} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/comment/{id} [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found")
	if err != nil {
		return respondError(c, err)
	}

	var req service.CreateCommentInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	req.UserID = middleware.UserID(c)
	req.PostID = postID

	comments, err := s.commentService.CreateComment(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id
// @Summary Delete own comment
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/comment/{id}/{comment_id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found")
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := parseID(c, "comment_id", "Comment does not exist")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentService.DeleteComment(c.UserContext(), middleware.UserID(c), postID, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}
