package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"chartable/cache"
	"chartable/export"
	"chartable/model"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// projectionStore memoizes table projections across requests. nil is
// valid and disables memoization.
var projectionStore *cache.ProjectionStore

func SetProjectionStore(store *cache.ProjectionStore) {
	projectionStore = store
}

type TableRequestPayload struct {
	Result *model.QueryResult `json:"result"`
	Query  model.TableQuery   `json:"query"`
}

type CompareTableRequestPayload struct {
	Result        *model.QueryResult `json:"result"`
	CompareResult *model.QueryResult `json:"compare_result"`
	Query         model.TableQuery   `json:"query"`
}

func decodePayload(c *gin.Context, payload interface{}) bool {
	logCtx := log.WithFields(log.Fields{"reqId": getReqID(c)})

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		logCtx.WithError(err).Error("Projection failed. Json decode failed.")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Projection failed. Json decode failed."})
		return false
	}
	return true
}

// AttributionTableHandler projects a single period attribution result
// into table records.
func AttributionTableHandler(c *gin.Context) {
	var payload TableRequestPayload
	if !decodePayload(c, &payload) {
		return
	}

	key, err := cache.Key("attribution_table", payload)
	if err == nil {
		if cached, found := projectionStore.Get(key); found {
			c.JSON(http.StatusOK, gin.H{"result": cached})
			return
		}
	}

	records := model.GetTableData(payload.Result, payload.Query)
	if err == nil {
		projectionStore.Put(key, records)
	}
	c.JSON(http.StatusOK, gin.H{"result": records})
}

// AttributionCompareHandler joins two time aligned attribution results
// and emits comparison cells per metric.
func AttributionCompareHandler(c *gin.Context) {
	logCtx := log.WithFields(log.Fields{"reqId": getReqID(c)})

	var payload CompareTableRequestPayload
	if !decodePayload(c, &payload) {
		return
	}

	key, cacheErr := cache.Key("attribution_compare", payload)
	if cacheErr == nil {
		if cached, found := projectionStore.Get(key); found {
			c.JSON(http.StatusOK, gin.H{"result": cached})
			return
		}
	}

	records, err := model.GetCompareTableData(payload.Result, payload.CompareResult, payload.Query)
	if err != nil {
		logCtx.WithError(err).Error("Projection failed. Comparison join failed.")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cacheErr == nil {
		projectionStore.Put(key, records)
	}
	c.JSON(http.StatusOK, gin.H{"result": records})
}

type EventBreakdownRequestPayload struct {
	Result     *model.QueryResult      `json:"result"`
	Breakdowns []model.GroupByProperty `json:"breakdowns"`
	Sorter     *model.Sorter           `json:"sorter,omitempty"`
	MaxVisible int                     `json:"max_visible,omitempty"`
}

// EventBreakdownHandler projects an event breakdown result into labeled
// records, optionally capped to the top visible categories.
func EventBreakdownHandler(c *gin.Context) {
	var payload EventBreakdownRequestPayload
	if !decodePayload(c, &payload) {
		return
	}

	records := model.FormatEventBreakdownData(payload.Result, payload.Breakdowns)
	if payload.MaxVisible > 0 {
		records = model.VisibleRecords(records, payload.Sorter, payload.MaxVisible)
	} else if payload.Sorter != nil {
		records = model.SortResults(records, payload.Sorter)
	}
	c.JSON(http.StatusOK, gin.H{"result": records})
}

type FunnelTableRequestPayload struct {
	Result *model.QueryResult `json:"result"`
	Query  model.FunnelQuery  `json:"query"`
}

func FunnelTableHandler(c *gin.Context) {
	var payload FunnelTableRequestPayload
	if !decodePayload(c, &payload) {
		return
	}

	records := model.GetFunnelTableData(payload.Result, payload.Query)
	c.JSON(http.StatusOK, gin.H{"result": records})
}

type ChartSeriesRequestPayload struct {
	Result         *model.QueryResult `json:"result"`
	Query          model.TableQuery   `json:"query"`
	LabelKey       string             `json:"label_key"`
	ValueKeys      []string           `json:"value_keys"`
	VisibleIndices []int              `json:"visible_indices"`
}

// ChartSeriesHandler projects the result and folds the visible records
// into chart series shapes. One value key yields plain series points, more
// than one yields grouped points plus the flat axis-scale values.
func ChartSeriesHandler(c *gin.Context) {
	var payload ChartSeriesRequestPayload
	if !decodePayload(c, &payload) {
		return
	}

	labelKey := payload.LabelKey
	if labelKey == "" {
		labelKey = payload.Query.Touchpoint
	}

	records := model.GetTableData(payload.Result, payload.Query)
	if len(payload.ValueKeys) > 1 {
		points, allValues := model.FormatGroupedChartData(records, labelKey,
			payload.ValueKeys, payload.VisibleIndices)
		c.JSON(http.StatusOK, gin.H{"result": points, "all_values": allValues})
		return
	}
	valueKey := model.FieldConversion
	if len(payload.ValueKeys) == 1 {
		valueKey = payload.ValueKeys[0]
	}
	points := model.FormatChartData(records, labelKey, valueKey, payload.VisibleIndices)
	c.JSON(http.StatusOK, gin.H{"result": points})
}

type DownloadRequestPayload struct {
	Result        *model.QueryResult `json:"result"`
	CompareResult *model.QueryResult `json:"compare_result,omitempty"`
	Query         model.TableQuery   `json:"query"`
	Columns       []string           `json:"columns"`
	RangeA        string             `json:"range_a,omitempty"`
	RangeB        string             `json:"range_b,omitempty"`
}

// TableDownloadHandler streams the projected table as csv or xlsx.
// Comparison cells flatten to one column per period plus the change.
func TableDownloadHandler(c *gin.Context) {
	logCtx := log.WithFields(log.Fields{"reqId": getReqID(c)})

	var payload DownloadRequestPayload
	if !decodePayload(c, &payload) {
		return
	}

	var records []model.TableRecord
	if payload.CompareResult != nil {
		var err error
		records, err = model.GetCompareTableData(payload.Result, payload.CompareResult, payload.Query)
		if err != nil {
			logCtx.WithError(err).Error("Download failed. Comparison join failed.")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		records = model.GetTableData(payload.Result, payload.Query)
	}

	headers, rows := export.FlattenTableRecords(records, payload.Columns,
		payload.RangeA, payload.RangeB)

	if c.Query("format") == "xlsx" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", downloadName(c)))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteXLSX(c.Writer, headers, rows); err != nil {
			logCtx.WithError(err).Error("Download failed. Workbook write failed.")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", downloadName(c)))
	c.Header("Content-Type", "text/csv")
	if err := export.WriteCSV(c.Writer, headers, rows); err != nil {
		logCtx.WithError(err).Error("Download failed. Csv write failed.")
	}
}

func downloadName(c *gin.Context) string {
	name := c.Query("name")
	if name == "" {
		return "chartable_table"
	}
	return name
}

func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
