package router

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/hertz-contrib/keyauth"
	"gorm.io/gorm"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/api/handler"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/config"
)

// 上传文件大小上限
const maxUploadBytes = 20 << 20 // 20MB

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config, evaluateHandler *handler.EvaluateHandler, adminHandler *handler.AdminHandler) {
	api := h.Group("/api/v1")

	api.POST("/resume/evaluate", func(c context.Context, ctx *app.RequestContext) {
		// 获取上传的简历文件
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "简历文件未找到"})
			return
		}

		jobRole := ctx.PostForm("job_role")
		if jobRole == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少目标岗位 job_role"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		fileData, err := handler.ReadLimited(file, maxUploadBytes)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}

		req := &handler.EvaluateRequest{
			FileData: fileData,
			Filename: fileHeader.Filename,
			JobRole:  jobRole,
			JDText:   ctx.PostForm("jd_text"),
		}

		// 可选的职位描述文件
		if jdHeader, jdErr := ctx.FormFile("jd"); jdErr == nil {
			jdFile, openErr := jdHeader.Open()
			if openErr != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开职位描述文件失败"})
				return
			}
			defer jdFile.Close()

			jdData, readErr := handler.ReadLimited(jdFile, maxUploadBytes)
			if readErr != nil {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": readErr.Error()})
				return
			}
			req.JDData = jdData
			req.JDFilename = jdHeader.Filename
		}

		resp, err := evaluateHandler.HandleEvaluate(c, req)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	registerAdminRoutes(api, cfg, adminHandler)
}

// registerAdminRoutes 注册管理端路由，受API Key保护
func registerAdminRoutes(api *route.RouterGroup, cfg *config.Config, adminHandler *handler.AdminHandler) {
	admin := api.Group("/admin")

	// 管理接口要求 X-API-Key 请求头
	admin.Use(keyauth.New(
		keyauth.WithKeyLookUp("header:X-API-Key", ""),
		keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
			return cfg.Server.AdminAPIKey != "" && key == cfg.Server.AdminAPIKey, nil
		}),
	))

	admin.GET("/files", func(c context.Context, ctx *app.RequestContext) {
		resp, err := adminHandler.ListFiles(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	admin.GET("/files/download", func(c context.Context, ctx *app.RequestContext) {
		objectKey := ctx.Query("key")
		url, err := adminHandler.DownloadURL(c, objectKey)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"key": objectKey, "url": url})
	})

	admin.GET("/files/content", func(c context.Context, ctx *app.RequestContext) {
		objectKey := ctx.Query("key")
		data, err := adminHandler.DownloadFile(c, objectKey)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		ctx.Data(consts.StatusOK, "application/octet-stream", data)
	})

	admin.DELETE("/files", func(c context.Context, ctx *app.RequestContext) {
		objectKey := ctx.Query("key")
		if err := adminHandler.DeleteFile(c, objectKey); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"key": objectKey, "deleted": true})
	})

	admin.GET("/evaluations", func(c context.Context, ctx *app.RequestContext) {
		limit, _ := strconv.Atoi(ctx.Query("limit"))
		offset, _ := strconv.Atoi(ctx.Query("offset"))

		resp, err := adminHandler.ListEvaluations(c, ctx.Query("job_role"), limit, offset)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	admin.GET("/evaluations/:id", func(c context.Context, ctx *app.RequestContext) {
		record, err := adminHandler.GetEvaluation(c, ctx.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "评估记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})
}
