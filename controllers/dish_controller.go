package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type DishController struct {
	Dishes *services.DishService
}

func NewDishController(dishes *services.DishService) *DishController {
	return &DishController{Dishes: dishes}
}

// GET /dishes?categoryId=...
func (dc *DishController) List(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid categoryId")
			return
		}
		v := uint(id)
		categoryID = &v
	}
	dishes, err := dc.Dishes.List(categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, dishes)
}

// GET /dishes/:id
func (dc *DishController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	dish, err := dc.Dishes.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, dish)
}

// GET /categories
func (dc *DishController) Categories(c *gin.Context) {
	categories, err := dc.Dishes.Categories()
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, categories)
}

type rateReq struct {
	Value   int    `json:"value" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// POST /dishes/:id/ratings
func (dc *DishController) Rate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := dc.Dishes.Rate(utils.CurrentUserID(c), id, req.Value, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	resp.NoContent(c)
}
