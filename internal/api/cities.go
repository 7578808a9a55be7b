package api

import "weather-dashboard/internal/models"

// Static city tables served by the hot/all endpoints. IDs are QWeather
// location IDs.
var hotCities = []models.CityRecord{
	{ID: "101010100", Name: "北京", Adm1: "北京市", Adm2: "北京", Lat: "39.90499", Lon: "116.40529"},
	{ID: "101020100", Name: "上海", Adm1: "上海市", Adm2: "上海", Lat: "31.23171", Lon: "121.47264"},
	{ID: "101280101", Name: "广州", Adm1: "广东省", Adm2: "广州", Lat: "23.12518", Lon: "113.28064"},
	{ID: "101280601", Name: "深圳", Adm1: "广东省", Adm2: "深圳", Lat: "22.54700", Lon: "114.08595"},
	{ID: "101210101", Name: "杭州", Adm1: "浙江省", Adm2: "杭州", Lat: "30.24603", Lon: "120.21020"},
	{ID: "101190101", Name: "南京", Adm1: "江苏省", Adm2: "南京", Lat: "32.05838", Lon: "118.79647"},
	{ID: "101270101", Name: "成都", Adm1: "四川省", Adm2: "成都", Lat: "30.57270", Lon: "104.06675"},
	{ID: "101040100", Name: "重庆", Adm1: "重庆市", Adm2: "重庆", Lat: "29.56301", Lon: "106.55156"},
	{ID: "101200101", Name: "武汉", Adm1: "湖北省", Adm2: "武汉", Lat: "30.59276", Lon: "114.30525"},
	{ID: "101110101", Name: "西安", Adm1: "陕西省", Adm2: "西安", Lat: "34.34127", Lon: "108.93984"},
}

var allCities = append(hotCities, []models.CityRecord{
	{ID: "101030100", Name: "天津", Adm1: "天津市", Adm2: "天津", Lat: "39.08496", Lon: "117.19937"},
	{ID: "101230101", Name: "福州", Adm1: "福建省", Adm2: "福州", Lat: "26.07421", Lon: "119.29647"},
	{ID: "101230201", Name: "厦门", Adm1: "福建省", Adm2: "厦门", Lat: "24.47951", Lon: "118.08948"},
	{ID: "101250101", Name: "长沙", Adm1: "湖南省", Adm2: "长沙", Lat: "28.22778", Lon: "112.93886"},
	{ID: "101180101", Name: "郑州", Adm1: "河南省", Adm2: "郑州", Lat: "34.74725", Lon: "113.62493"},
	{ID: "101120101", Name: "济南", Adm1: "山东省", Adm2: "济南", Lat: "36.65184", Lon: "117.12009"},
	{ID: "101120201", Name: "青岛", Adm1: "山东省", Adm2: "青岛", Lat: "36.06623", Lon: "120.38299"},
	{ID: "101070101", Name: "沈阳", Adm1: "辽宁省", Adm2: "沈阳", Lat: "41.80572", Lon: "123.43147"},
	{ID: "101060101", Name: "长春", Adm1: "吉林省", Adm2: "长春", Lat: "43.81602", Lon: "125.32357"},
	{ID: "101050101", Name: "哈尔滨", Adm1: "黑龙江省", Adm2: "哈尔滨", Lat: "45.75660", Lon: "126.64244"},
	{ID: "101090101", Name: "石家庄", Adm1: "河北省", Adm2: "石家庄", Lat: "38.04276", Lon: "114.51486"},
	{ID: "101100101", Name: "太原", Adm1: "山西省", Adm2: "太原", Lat: "37.87059", Lon: "112.55072"},
	{ID: "101290101", Name: "昆明", Adm1: "云南省", Adm2: "昆明", Lat: "25.03889", Lon: "102.71833"},
	{ID: "101300101", Name: "南宁", Adm1: "广西壮族自治区", Adm2: "南宁", Lat: "22.81673", Lon: "108.36654"},
	{ID: "101310101", Name: "海口", Adm1: "海南省", Adm2: "海口", Lat: "20.04422", Lon: "110.19989"},
}...)
