package controller

import (
	"strconv"
	"time"

	"workchat-be/internal/dto"
	"workchat-be/internal/pkg/apperror"
	"workchat-be/internal/pkg/serverutils"
	"workchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChannelController interface {
	RegisterRoutes(r fiber.Router)
	GetChannels(ctx *fiber.Ctx) error
	CreateChannel(ctx *fiber.Ctx) error
	GetChannel(ctx *fiber.Ctx) error
	GetMembers(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
	GetChats(ctx *fiber.Ctx) error
	GetUnreads(ctx *fiber.Ctx) error
	PostChat(ctx *fiber.Ctx) error
	PostFiles(ctx *fiber.Ctx) error
}

type channelController struct {
	channelService service.IChannelService
	chatService    service.IChatService
}

func NewChannelController(channelService service.IChannelService, chatService service.IChatService) IChannelController {
	return &channelController{
		channelService: channelService,
		chatService:    chatService,
	}
}

func (c *channelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspaces/:url")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/channels", c.GetChannels)
	h.Post("/channels", c.CreateChannel)
	h.Get("/channels/:name", c.GetChannel)
	h.Get("/channels/:name/members", c.GetMembers)
	h.Post("/channels/:name/members", c.AddMember)
	h.Get("/channels/:name/chats", c.GetChats)
	h.Get("/channels/:name/unreads", c.GetUnreads)
	h.Post("/channels/:name/chats", c.PostChat)
	h.Post("/channels/:name/images", c.PostFiles)
}

func (c *channelController) GetChannels(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)

	res, err := c.channelService.GetWorkspaceChannels(ctx.Context(), ctx.Params("url"), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Workspace channels", res))
}

func (c *channelController) CreateChannel(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)

	var req dto.CreateChannelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.channelService.CreateWorkspaceChannel(ctx.Context(), ctx.Params("url"), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Channel created", res))
}

func (c *channelController) GetChannel(ctx *fiber.Ctx) error {
	res, err := c.channelService.GetWorkspaceChannel(ctx.Context(), ctx.Params("url"), ctx.Params("name"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Channel", res))
}

func (c *channelController) GetMembers(ctx *fiber.Ctx) error {
	res, err := c.channelService.GetWorkspaceChannelMembers(ctx.Context(), ctx.Params("url"), ctx.Params("name"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Channel members", res))
}

func (c *channelController) AddMember(ctx *fiber.Ctx) error {
	var req dto.AddChannelMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	err := c.channelService.AddWorkspaceChannelMember(ctx.Context(), ctx.Params("url"), ctx.Params("name"), req.Email)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse[any]("Member added", nil))
}

func (c *channelController) GetChats(ctx *fiber.Ctx) error {
	perPage := ctx.QueryInt("perPage", 20)
	page := ctx.QueryInt("page", 1)

	res, err := c.channelService.GetWorkspaceChannelChats(ctx.Context(), ctx.Params("url"), ctx.Params("name"), perPage, page)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Channel chats", res))
}

func (c *channelController) GetUnreads(ctx *fiber.Ctx) error {
	// `after` is unix milliseconds; zero counts everything.
	after, err := parseUnixMilli(ctx.Query("after", "0"))
	if err != nil {
		return apperror.InvalidArgument("after must be a unix millisecond timestamp")
	}

	res, err := c.channelService.GetChannelUnreadsCount(ctx.Context(), ctx.Params("url"), ctx.Params("name"), after)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Unread count", res))
}

// parseUnixMilli reads a millisecond cursor as int64 so values past 2038 stay
// intact on 32-bit builds.
func parseUnixMilli(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

func (c *channelController) PostChat(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)

	var req dto.PostChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.PostChat(ctx.Context(), ctx.Params("url"), ctx.Params("name"), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat posted", res))
}

func (c *channelController) PostFiles(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)

	var req dto.PostFilesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.PostFiles(ctx.Context(), ctx.Params("url"), ctx.Params("name"), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("File chats posted", res))
}
