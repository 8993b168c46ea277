package util

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var numberRegex = regexp.MustCompile(`[+-]?([0-9]*[.])?[0-9]+`)

// GetNumberFromAnyString Extracts the first numeric token from the given
// string. Returns 0 when no number is present.
func GetNumberFromAnyString(str string) float64 {
	numStr := numberRegex.FindString(str)

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0
	}

	return num
}

func GetSortWeightFromAnyType(value interface{}) float64 {
	if value == nil {
		return 0
	}

	switch valueType := value.(type) {
	case float64:
		return value.(float64)
	case float32:
		return float64(value.(float32))
	case int:
		return float64(value.(int))
	case int32:
		return float64(value.(int32))
	case int64:
		return float64(value.(int64))
	case string:
		return GetNumberFromAnyString(value.(string))
	default:
		log.WithField("type", fmt.Sprintf("%T", valueType)).
			Info("Unsupported type used on GetSortWeightFromAnyType")
		return 0
	}
}

// SafeConvertToFloat64 Converts an interface to float64 value.
func SafeConvertToFloat64(value interface{}) float64 {
	return GetSortWeightFromAnyType(value)
}

func GetValueAsString(value interface{}) (string, error) {
	switch value.(type) {
	case float32, float64:
		return fmt.Sprintf("%v", value), nil
	case int, int32, int64:
		return fmt.Sprintf("%v", value), nil
	case string:
		return value.(string), nil
	case bool:
		return strconv.FormatBool(value.(bool)), nil
	default:
		return "", errors.New("invalid type to convert as string")
	}
}

// FloatRoundOffWithPrecision Rounds off the value to given number of
// fractional digits. NaN and infinities are returned unchanged.
func FloatRoundOffWithPrecision(value float64, precision int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	valueString := fmt.Sprintf("%0.*f", precision, value)
	roundOffValue, err := strconv.ParseFloat(valueString, 64)
	if err != nil {
		log.WithFields(log.Fields{"value": value,
			"precision": precision}).Error("error while rounding off float value")
		return value
	}
	return roundOffValue
}

func IsNumber(num string) bool {
	_, err := strconv.ParseFloat(num, 64)
	return err == nil
}

func MinInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}

func MaxFloat64(a float64, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func ContainsStringInArray(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

func HashKeyUsingSha256Checksum(data string) string {
	sum := sha256.Sum256([]byte(data))
	encryptData := fmt.Sprintf("%x", sum)
	return encryptData
}

// GenerateHash To generate hash value for given byte array.
func GenerateHash(bytes []byte) string {
	hasher := sha1.New()
	hasher.Write(bytes)
	sha := base64.URLEncoding.EncodeToString(hasher.Sum(nil))
	return sha
}

// GenerateHashStringForStruct Marshals the passed struct and generates a unique hash string.
func GenerateHashStringForStruct(queryPayload interface{}) (string, error) {
	queryCacheBytes, err := json.Marshal(queryPayload)
	if err != nil {
		return "", err
	}
	return GenerateHash(queryCacheBytes), nil
}

func GetUUID() string {
	return uuid.New().String()
}

// CaseInsensitiveContains Reports whether sub occurs within src ignoring case.
func CaseInsensitiveContains(src, sub string) bool {
	return strings.Contains(strings.ToLower(src), strings.ToLower(sub))
}
