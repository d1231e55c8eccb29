package utils

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

func BigIntString(balance *big.Int, decimals int) string {
	amount := balance.String()
	if balance.Sign() < 0 {
		return "-" + StringDecimals(amount[1:], decimals)
	}
	return StringDecimals(amount, decimals)
}

func StringDecimals(amount string, decimals int) string {
	var result string
	if len(amount) > decimals {
		result = fmt.Sprintf("%s.%s", amount[0:len(amount)-decimals], amount[len(amount)-decimals:])
	} else {
		sub := decimals - len(amount)
		var zero string
		for i := 0; i < sub; i++ {
			zero += "0"
		}
		result = "0." + zero + amount
	}
	return clean(strings.TrimRight(result, "0"))
}

func clean(newNum string) string {
	stringBytes := bytes.TrimRight([]byte(newNum), "0")
	newNum = string(stringBytes)
	if stringBytes[len(stringBytes)-1] == 46 {
		newNum = newNum[:len(stringBytes)-1]
	}
	if stringBytes[0] == 46 {
		newNum = "0" + newNum
	}
	return newNum
}

func JsonEncode(source interface{}) (string, error) {
	bytesBuffer := &bytes.Buffer{}
	encoder := json.NewEncoder(bytesBuffer)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(source)
	if err != nil {
		return "", err
	}

	jsons := string(bytesBuffer.Bytes())
	tsjsons := strings.TrimSuffix(jsons, "\n")
	return tsjsons, nil
}

// StripHexPrefix drops a leading 0x or 0X.
func StripHexPrefix(hexStr string) string {
	if strings.HasPrefix(hexStr, "0x") || strings.HasPrefix(hexStr, "0X") {
		return hexStr[2:]
	}
	return hexStr
}

func HexStringToInt(hetStr string) (*big.Int, error) {
	hetStr = StripHexPrefix(hetStr)
	if len(hetStr)&1 == 1 {
		hetStr = "0" + hetStr
	}
	byteValue, err := hex.DecodeString(hetStr)
	if err != nil {
		return nil, err
	}
	intValue := new(big.Int).SetBytes(byteValue)
	return intValue, nil
}
